package tasks

import "strings"

// Filter applies an exact status match and a case-insensitive substring
// search over title, assignee display name/email and platform. An empty
// status or "all" skips the status filter; an empty search term matches
// everything. Pure function over the already-joined list.
func Filter(list []TaskWithAssignee, status, search string) []TaskWithAssignee {
	filtered := list

	if status != "" && status != "all" {
		kept := make([]TaskWithAssignee, 0, len(filtered))
		for _, task := range filtered {
			if string(task.Status) == status {
				kept = append(kept, task)
			}
		}
		filtered = kept
	}

	if search != "" {
		term := strings.ToLower(search)
		kept := make([]TaskWithAssignee, 0, len(filtered))
		for _, task := range filtered {
			if matches(task, term) {
				kept = append(kept, task)
			}
		}
		filtered = kept
	}

	return filtered
}

func matches(task TaskWithAssignee, term string) bool {
	if strings.Contains(strings.ToLower(task.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Platform), term) {
		return true
	}
	if task.Assignee != nil {
		if task.Assignee.FullName != nil && strings.Contains(strings.ToLower(*task.Assignee.FullName), term) {
			return true
		}
		if strings.Contains(strings.ToLower(task.Assignee.Email), term) {
			return true
		}
	}
	return false
}
