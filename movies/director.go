package movies

type Director struct {
	UID    string   `json:"uid,omitempty"`
	DType  []string `json:"dgraph.type,omitempty"`
	Name   string   `json:"name,omitempty" dgraph:"index=hash,term,trigram,fulltext"`
	Movies []Movie  `json:"directed,omitempty" dgraph:"reverse count"`
}
