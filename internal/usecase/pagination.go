package usecase

// pageBounds converts 1-based page arguments into limit/offset, defaulting
// page to 1 and pageSize to 10.
func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
