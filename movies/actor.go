package movies

type Actor struct {
	UID    string   `json:"uid,omitempty"`
	DType  []string `json:"dgraph.type,omitempty"`
	Name   string   `json:"name,omitempty" dgraph:"index=hash,term,trigram,fulltext"`
	Movies []Movie  `json:"acted_in,omitempty" dgraph:"reverse count"`
}
