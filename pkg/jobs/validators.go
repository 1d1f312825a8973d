package jobs

type ListJobsQuery struct {
	Limit    int      `query:"limit" json:"limit,omitempty" default:"10" validate:"min=1,max=100"`
	Offset   int      `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Types    []string `query:"type" json:"types,omitempty" validate:"omitempty,dive,oneof=calibre_import"`
	Statuses []string `query:"status" json:"statuses,omitempty" validate:"omitempty,dive,oneof=pending in_progress completed failed"`
}
