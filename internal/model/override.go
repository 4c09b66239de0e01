package model

import (
	"github.com/browsekit/navigator/pkg/rest/request"
	"github.com/browsekit/navigator/pkg/rest/response"
)

// Override maps a hostname to the address the shell should display for it.
// Entries never influence socket connections, they only change what the
// status bar reports.
type Override struct {
	Hostname string `json:"hostname"`
	IP       string `json:"ip"`
}

func (o Override) Key() string {
	return o.Hostname
}

type OverrideResponse struct {
	response.Pagination
	Items []Override `json:"items"`
}

func NewOverrideResponse(items []Override, params *request.PaginationParams) *OverrideResponse {
	page, p := response.Paginate(items, params.Page, params.PageSize)
	return &OverrideResponse{
		Pagination: p,
		Items:      page,
	}
}
