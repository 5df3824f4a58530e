package upstream

import (
	"sort"
	"strings"

	"github.com/pokeview/pokeview/internal/catalog"
)

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type indexPayload struct {
	Count   int              `json:"count"`
	Results *[]namedResource `json:"results"`
}

// entries 将索引响应转换为 catalog.Entry，并校验编号可解析且唯一。
func (p indexPayload) entries(source string) ([]catalog.Entry, error) {
	if p.Results == nil {
		return nil, &catalog.ParseError{URL: source, Reason: "missing results"}
	}

	results := *p.Results
	entries := make([]catalog.Entry, 0, len(results))
	seen := make(map[int]string, len(results))
	for _, item := range results {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, &catalog.ParseError{URL: source, Reason: "entry without name"}
		}
		id, err := catalog.SequenceIDFromLocator(item.URL)
		if err != nil {
			return nil, &catalog.ParseError{URL: source, Reason: "entry " + name, Err: err}
		}
		if prior, dup := seen[id]; dup {
			return nil, &catalog.ParseError{URL: source, Reason: "duplicate id shared by " + prior + " and " + name}
		}
		seen[id] = name
		entries = append(entries, catalog.Entry{
			Name:       name,
			Locator:    item.URL,
			SequenceID: id,
		})
	}
	return entries, nil
}

type recordPayload struct {
	ID      *int   `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault *string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
}

// record 将详情响应转换为 catalog.Record；缺少 id 或 name 视为解析错误。
func (p recordPayload) record(source string) (catalog.Record, error) {
	if p.ID == nil {
		return catalog.Record{}, &catalog.ParseError{URL: source, Reason: "missing id"}
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return catalog.Record{}, &catalog.ParseError{URL: source, Reason: "missing name"}
	}

	slots := append(p.Types[:0:0], p.Types...)
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	types := make([]string, 0, len(slots))
	for _, t := range slots {
		if t.Type.Name != "" {
			types = append(types, t.Type.Name)
		}
	}

	stats := make([]catalog.Stat, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, catalog.Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}

	image := ""
	if p.Sprites.FrontDefault != nil {
		image = *p.Sprites.FrontDefault
	}
	if image == "" && p.Sprites.Other.OfficialArtwork.FrontDefault != nil {
		image = *p.Sprites.Other.OfficialArtwork.FrontDefault
	}

	return catalog.Record{
		SequenceID: *p.ID,
		Name:       name,
		ImageURL:   image,
		Types:      types,
		Stats:      stats,
		Height:     p.Height,
		Weight:     p.Weight,
	}, nil
}
