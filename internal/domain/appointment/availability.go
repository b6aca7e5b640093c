package appointment

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// SlotCatalog é a lista fixa e ordenada de horários do dia, comum a todos
// os barbeiros.
type SlotCatalog []string

func NewSlotCatalog(values []string) (SlotCatalog, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("slot catalog is empty")
	}

	var prev time.Time
	out := make(SlotCatalog, 0, len(values))
	for i, v := range values {
		t, err := time.Parse(TimeLayout, v)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", v, err)
		}
		if i > 0 && !t.After(prev) {
			return nil, fmt.Errorf("slot %q is not after %q", v, out[i-1])
		}
		prev = t
		out = append(out, t.Format(TimeLayout))
	}
	return out, nil
}

func (c SlotCatalog) Contains(hm string) bool {
	for _, s := range c {
		if s == hm {
			return true
		}
	}
	return false
}

// Free devolve o catálogo menos os horários reservados, na ordem do catálogo.
func (c SlotCatalog) Free(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	free := make([]string, 0, len(c))
	for _, s := range c {
		if _, ok := taken[s]; !ok {
			free = append(free, s)
		}
	}
	return free
}
