package service

import (
	"ScoreIngest/internal/ingest"
	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"
)

// catalog 按变体查找 schema 与存储
type catalog struct {
	stores      map[model.Variant]interfaces.MatchStore
	pairBoxRows bool
}

func newCatalog(stores map[model.Variant]interfaces.MatchStore, pairBoxRows bool) catalog {
	return catalog{stores: stores, pairBoxRows: pairBoxRows}
}

func (c catalog) schema(v model.Variant) (ingest.Schema, error) {
	if v == model.VariantCyber && !c.pairBoxRows {
		return ingest.NewBoxScoreSchema(false), nil
	}
	s, ok := ingest.Lookup(v)
	if !ok {
		return nil, invalidf("unknown variant %q", v)
	}
	return s, nil
}

func (c catalog) store(v model.Variant) (interfaces.MatchStore, error) {
	st, ok := c.stores[v]
	if !ok {
		return nil, invalidf("unknown variant %q", v)
	}
	return st, nil
}

func (c catalog) resolve(v model.Variant) (ingest.Schema, interfaces.MatchStore, error) {
	s, err := c.schema(v)
	if err != nil {
		return nil, nil, err
	}
	st, err := c.store(v)
	if err != nil {
		return nil, nil, err
	}
	return s, st, nil
}
