package request

// DateRangeQuery represents the query parameters of the profit endpoints
type DateRangeQuery struct {
	AdminID   int64  `form:"adminId"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// ExportRequest selects the bills to export. The fields are read from the
// JSON body on POST and from the query string on GET.
type ExportRequest struct {
	AdminID   int64  `json:"adminId" form:"adminId"`
	StartDate string `json:"startDate" form:"startDate"`
	EndDate   string `json:"endDate" form:"endDate"`
}

// AdminQuery carries admin_id in the query string
type AdminQuery struct {
	AdminID int64 `form:"admin_id"`
}

// CustomerReportQuery selects one customer's bills
type CustomerReportQuery struct {
	AdminID int64  `form:"admin_id"`
	Contact string `form:"contact"`
}
