package models

// Requests for picks HTTP endpoints. Defined in domain for consistency and reuse.

type PicksRequest struct {
	Symbols string `query:"symbols" json:"symbols" validate:"max=1024"`
}

type SymbolRequest struct {
	Symbol  string `param:"symbol" json:"symbol" validate:"required,max=16"`
	Refresh bool   `query:"refresh" json:"refresh" default:"false"`
}
