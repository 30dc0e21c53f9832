package dgraph

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgraph-io/dgo/v250/protos/api"
	"github.com/pkg/errors"

	"github.com/mlwelles/moviegraph/movies"
)

const (
	movieVar     = "movie"
	movieExists  = "@if(eq(len(movie), 1))"
	movieKeyPred = "movie_id"
	namePred     = "name"
)

// upsert accumulates the query half of an upsert block: one uid variable
// per node looked up by key, with the key passed as a DQL variable.
type upsert struct {
	params []string
	blocks []string
	vars   map[string]string
}

func newUpsert() *upsert {
	return &upsert{vars: make(map[string]string)}
}

// lookup binds variable v to the node of dgraph type typ whose pred equals value.
func (u *upsert) lookup(v, typ, pred, value string) {
	param := "$" + v
	u.params = append(u.params, param+": string")
	u.vars[param] = value
	u.blocks = append(u.blocks,
		fmt.Sprintf("\t%s as var(func: eq(%s, %s)) @filter(type(%s))", v, pred, param, typ))
}

func (u *upsert) query() string {
	return fmt.Sprintf("query q(%s) {\n%s\n}",
		strings.Join(u.params, ", "), strings.Join(u.blocks, "\n"))
}

func ref(v string) string { return "uid(" + v + ")" }

func edge(v string) []map[string]string {
	return []map[string]string{{"uid": ref(v)}}
}

func movieRequest(m *movies.Movie) (*api.Request, error) {
	u := newUpsert()
	u.lookup(movieVar, movies.LabelMovie, movieKeyPred, m.ID)

	node := map[string]any{
		"uid":          ref(movieVar),
		"dgraph.type":  movies.LabelMovie,
		movieKeyPred:   m.ID,
		"title":        m.Title,
		"release_date": m.ReleaseDate,
	}
	// keywords is a list predicate: set appends, so the old values are
	// deleted first. Absent numbers are deleted as well.
	drop := map[string]any{"uid": ref(movieVar), "keywords": nil}
	setOrDrop(node, drop, "popularity", m.Popularity)
	setOrDrop(node, drop, "revenue", m.Revenue)
	setOrDrop(node, drop, "vote_count", m.VoteCount)
	setOrDrop(node, drop, "budget", m.Budget)
	if len(m.Keywords) > 0 {
		node["keywords"] = m.Keywords
	}

	set := []any{node}
	var links []map[string]string
	for i, name := range unique(m.GenreNames()) {
		v := fmt.Sprintf("genre%d", i)
		u.lookup(v, movies.LabelGenre, namePred, name)
		set = append(set, map[string]any{
			"uid":         ref(v),
			"dgraph.type": movies.LabelGenre,
			namePred:      name,
		})
		links = append(links, edge(v)...)
	}
	if len(links) > 0 {
		node["has_genre"] = links
	}

	delJSON, err := json.Marshal(drop)
	if err != nil {
		return nil, errors.Wrap(err, "encoding movie delete")
	}
	setJSON, err := json.Marshal(set)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding movie %s", m.ID)
	}
	return &api.Request{
		Query: u.query(),
		Vars:  u.vars,
		Mutations: []*api.Mutation{
			{DeleteJson: delJSON, Cond: movieExists},
			{SetJson: setJSON},
		},
		CommitNow: true,
	}, nil
}

// creditsRequest returns nil when there is nothing to write.
func creditsRequest(c *movies.Credits) (*api.Request, error) {
	actors, directors := unique(c.Actors), unique(c.Directors)
	if len(actors) == 0 && len(directors) == 0 {
		return nil, nil
	}

	u := newUpsert()
	u.lookup(movieVar, movies.LabelMovie, movieKeyPred, c.MovieID)
	var set []any
	people := func(prefix, typ, rel string, names []string) {
		for i, name := range names {
			v := fmt.Sprintf("%s%d", prefix, i)
			u.lookup(v, typ, namePred, name)
			set = append(set, map[string]any{
				"uid":         ref(v),
				"dgraph.type": typ,
				namePred:      name,
				rel:           edge(movieVar),
			})
		}
	}
	people("actor", movies.LabelActor, "acted_in", actors)
	people("director", movies.LabelDirector, "directed", directors)

	setJSON, err := json.Marshal(set)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding credits for movie %s", c.MovieID)
	}
	return &api.Request{
		Query:     u.query(),
		Vars:      u.vars,
		Mutations: []*api.Mutation{{SetJson: setJSON, Cond: movieExists}},
		CommitNow: true,
	}, nil
}

func setOrDrop[T int64 | float64](set, drop map[string]any, pred string, v *T) {
	if v == nil {
		drop[pred] = nil
		return
	}
	set[pred] = *v
}

func unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
