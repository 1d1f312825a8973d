package libraries

type CreateLibraryPayload struct {
	Name     string `json:"name" validate:"required,max=100"`
	Filepath string `json:"filepath" validate:"required,filepath"`
}

type ListLibrariesQuery struct {
	Limit   int  `query:"limit" json:"limit,omitempty" default:"10" validate:"min=1,max=100"`
	Offset  int  `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Deleted bool `query:"deleted" json:"deleted,omitempty"`
}

type UpdateLibraryPayload struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Filepath *string `json:"filepath,omitempty" validate:"omitempty,filepath"`
	Deleted  *bool   `json:"deleted,omitempty" validate:"omitempty"`
}

type ImportLibraryPayload struct {
	SourceDBPath string `json:"source_db_path,omitempty" validate:"omitempty,filepath"`
}
