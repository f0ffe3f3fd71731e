package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids            []int64  `json:"ids,omitempty"`
	UserIds        []int64  `json:"userIds,omitempty"`
	Statuses       []Status `json:"statuses,omitempty"`
	SortByDateDesc bool     `json:"sortByDateDesc,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	Offset         int      `json:"offset,omitempty"`
}
