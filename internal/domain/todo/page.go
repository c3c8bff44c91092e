package todo

// Page is one slice of the filtered todo sequence. Total counts every stored
// todo before filtering, so a caller can tell an empty store (Total == 0)
// apart from a page that happens to be empty.
type Page struct {
	Items []Todo
	Total int
}

// StoreEmpty reports whether nothing was stored when the page was built.
func (p *Page) StoreEmpty() bool {
	return p.Total == 0
}

// Paginate filters all by q.State and returns the page at q.Offset of size
// q.Limit. Order of all is preserved. An offset past the end, or a zero
// limit, yields an empty page.
func Paginate(all []Todo, q Query) *Page {
	filtered := make([]Todo, 0, len(all))
	for i := range all {
		if q.State.Includes(&all[i]) {
			filtered = append(filtered, all[i])
		}
	}

	items := []Todo{}
	if start := q.Start(); q.Limit > 0 && start < len(filtered) {
		end := min(start+q.Limit, len(filtered))
		items = append(items, filtered[start:end]...)
	}

	return &Page{Items: items, Total: len(all)}
}
