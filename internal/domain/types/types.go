// Package types contains display shapes shared by renderers.
package types

// Row is one printable line of a psych sheet.
type Row struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	WCAID   string `json:"wca_id"`
	Single  string `json:"single"`
	Average string `json:"average"`
}
