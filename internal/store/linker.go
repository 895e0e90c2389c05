package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// LinkStats summarizes one linking pass.
type LinkStats struct {
	Terms    int // terms processed
	Resolved int // synonym edges resolved to an id
	Left     int // synonym edges still unresolved
}

// candidate is one row considered during synonym resolution.
type candidate struct {
	id           string
	partOfSpeech string
	synonyms     map[string]bool
}

// LinkAll resolves every unresolved synonym edge in the store against its
// term table. Resolution for a synonym of a term with part of speech pos:
//
//  1. exactly one term row matches the synonym text: take it
//  2. exactly one of the matches shares pos: take it
//  3. otherwise score the pos matches (or, if none, all matches) by how
//     many synonyms they share with the source term, and take the best
//
// Edges that resolve get their linked_id set; the rest stay NULL and are
// reported through the returned stats.
func (s *Store) LinkAll(ctx context.Context, logger *slog.Logger) (LinkStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var stats LinkStats

	rows, err := s.db.QueryContext(ctx, `SELECT id, part_of_speech FROM terms ORDER BY id`)
	if err != nil {
		return stats, fmt.Errorf("store: list terms: %w", err)
	}
	type source struct{ id, pos string }
	var sources []source
	for rows.Next() {
		var src source
		if err := rows.Scan(&src.id, &src.pos); err != nil {
			rows.Close()
			return stats, fmt.Errorf("store: scan term: %w", err)
		}
		sources = append(sources, src)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, err
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		unresolved, allSyns, err := s.synonymTerms(ctx, src.id)
		if err != nil {
			return stats, err
		}
		stats.Terms++

		resolved := 0
		for _, synTerm := range unresolved {
			id, err := s.resolveSynonym(ctx, src.pos, synTerm, allSyns)
			if err != nil {
				return stats, err
			}
			if id == "" {
				stats.Left++
				continue
			}
			_, err = s.db.ExecContext(ctx, `
				UPDATE synonyms SET linked_id = ? WHERE term_id = ? AND term = ?
			`, id, src.id, synTerm)
			if err != nil {
				return stats, fmt.Errorf("store: link %q on %s: %w", synTerm, src.id, err)
			}
			resolved++
			stats.Resolved++
		}

		if resolved > 0 || len(unresolved) > 0 {
			logger.Info("linked term",
				"id", src.id,
				"resolved", resolved,
				"unresolved", len(unresolved)-resolved)
		}
	}

	return stats, nil
}

// synonymTerms returns the unresolved synonym texts of a term plus the
// full synonym text set used for overlap scoring.
func (s *Store) synonymTerms(ctx context.Context, termID string) (unresolved, all []string, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT term, linked_id FROM synonyms WHERE term_id = ? ORDER BY term
	`, termID)
	if err != nil {
		return nil, nil, fmt.Errorf("store: synonyms of %s: %w", termID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var term string
		var linkedID sql.NullString
		if err := rows.Scan(&term, &linkedID); err != nil {
			return nil, nil, fmt.Errorf("store: scan synonym of %s: %w", termID, err)
		}
		all = append(all, term)
		if !linkedID.Valid {
			unresolved = append(unresolved, term)
		}
	}
	return unresolved, all, rows.Err()
}

func (s *Store) resolveSynonym(ctx context.Context, pos, synTerm string, currentSyns []string) (string, error) {
	candidates, err := s.candidatesFor(ctx, synTerm)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", nil
	}
	if len(candidates) == 1 {
		return candidates[0].id, nil
	}

	var posMatches []candidate
	for _, c := range candidates {
		if c.partOfSpeech == pos {
			posMatches = append(posMatches, c)
		}
	}
	if len(posMatches) == 1 {
		return posMatches[0].id, nil
	}

	pool := posMatches
	if len(pool) == 0 {
		pool = candidates
	}

	current := make(map[string]bool, len(currentSyns))
	for _, syn := range currentSyns {
		current[strings.ToLower(syn)] = true
	}

	best := pool[0]
	bestScore := -1
	for _, c := range pool {
		score := 0
		for syn := range c.synonyms {
			if current[syn] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best.id, nil
}

// candidatesFor loads every term row whose term text matches, with its
// synonym set for overlap scoring.
func (s *Store) candidatesFor(ctx context.Context, term string) ([]candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.part_of_speech, IFNULL(group_concat(sy.term, char(31)), '')
		FROM terms t LEFT JOIN synonyms sy ON sy.term_id = t.id
		WHERE t.term = ?
		GROUP BY t.id
		ORDER BY t.id
	`, strings.ToLower(term))
	if err != nil {
		return nil, fmt.Errorf("store: candidates for %q: %w", term, err)
	}
	defer rows.Close()

	var out []candidate
	for rows.Next() {
		var c candidate
		var joined string
		if err := rows.Scan(&c.id, &c.partOfSpeech, &joined); err != nil {
			return nil, fmt.Errorf("store: scan candidate for %q: %w", term, err)
		}
		c.synonyms = map[string]bool{}
		if joined != "" {
			for _, syn := range strings.Split(joined, "\x1f") {
				c.synonyms[strings.ToLower(syn)] = true
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
