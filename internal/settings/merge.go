package settings

import "github.com/kennyg/kit/internal/kit"

// AddHooks returns a new document with the kit's hooks merged in. Groups are
// keyed by the exact (lifecycle, matcher) string pair. An entry whose
// provenance already exists (an upgrade) is replaced in place; other kits'
// entries keep their positions.
func AddHooks(doc Document, kitID string, hooks []kit.InstalledHook) Document {
	out := doc.Clone()
	for _, h := range hooks {
		entry := HookEntry{
			Type:       EntryTypeCommand,
			Command:    h.Script,
			Timeout:    h.Timeout,
			Provenance: Provenance{Kit: kitID, Hook: h.ID},
		}
		out[h.Lifecycle] = upsert(out[h.Lifecycle], h.Matcher, entry)
	}
	return out
}

func upsert(groups []MatcherGroup, matcher string, entry HookEntry) []MatcherGroup {
	for gi := range groups {
		if groups[gi].Matcher != matcher {
			continue
		}
		for ei := range groups[gi].Hooks {
			if groups[gi].Hooks[ei].Provenance == entry.Provenance {
				groups[gi].Hooks[ei] = entry
				return groups
			}
		}
		groups[gi].Hooks = append(groups[gi].Hooks, entry)
		return groups
	}
	return append(groups, MatcherGroup{Matcher: matcher, Hooks: []HookEntry{entry}})
}

// ReconcileHooks merges the kit's full hook set into the document and then
// drops the kit's entries that set no longer produces: hooks removed by an
// upgrade, and stale placements of hooks that moved to a different
// lifecycle or matcher. Kept entries retain the positions AddHooks gives
// them; for a fresh install the result equals AddHooks.
func ReconcileHooks(doc Document, kitID string, hooks []kit.InstalledHook) Document {
	out := AddHooks(doc, kitID, hooks)

	current := make(map[Provenance]kit.InstalledHook, len(hooks))
	for _, h := range hooks {
		current[Provenance{Kit: kitID, Hook: h.ID}] = h
	}

	for lifecycle, groups := range out {
		kept := groups[:0]
		for _, g := range groups {
			entries := g.Hooks[:0]
			for _, e := range g.Hooks {
				if e.Provenance.Kit == kitID {
					h, ok := current[e.Provenance]
					if !ok || h.Lifecycle != lifecycle || h.Matcher != g.Matcher {
						continue
					}
				}
				entries = append(entries, e)
			}
			g.Hooks = entries
			if len(g.Hooks) > 0 {
				kept = append(kept, g)
			}
		}
		if len(kept) == 0 {
			delete(out, lifecycle)
		} else {
			out[lifecycle] = kept
		}
	}
	return out
}

// RemoveHooks returns a new document with every entry owned by kitID
// deleted. Groups left empty are dropped, as are lifecycles left with no
// groups. Entries belonging to other kits retain their relative order.
func RemoveHooks(doc Document, kitID string) Document {
	out := doc.Clone()
	for lifecycle, groups := range out {
		kept := groups[:0]
		for _, g := range groups {
			entries := g.Hooks[:0]
			for _, e := range g.Hooks {
				if e.Provenance.Kit != kitID {
					entries = append(entries, e)
				}
			}
			g.Hooks = entries
			if len(g.Hooks) > 0 {
				kept = append(kept, g)
			}
		}
		if len(kept) == 0 {
			delete(out, lifecycle)
		} else {
			out[lifecycle] = kept
		}
	}
	return out
}
