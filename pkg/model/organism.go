// Model for organism names and processed gene rows

package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ggdb "github.com/yumyai/ggregion/pkg/db"
)

// GetOrganismName looks up the display name of an organism.
// The bool is false when the store has no such organism.
func GetOrganismName(ctx context.Context, store *ggdb.GGDB, organismID string) (string, bool, error) {

	conn, err := store.Conn(ctx)
	if err != nil {
		return "", false, err
	}
	defer conn.Close()

	var name string
	err = conn.QueryRowContext(ctx, `SELECT organism FROM organisms WHERE organismid = ?;`, OrganismIDOf(organismID)).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("organism %s: %w", organismID, err)
	}
	return name, true, nil
}

// GetGeneInfo returns the processed rows for the given genes, keyed by gene id.
func GetGeneInfo(ctx context.Context, store *ggdb.GGDB, geneIDs []string) (map[string]GeneInfo, error) {

	info := make(map[string]GeneInfo, len(geneIDs))
	if len(geneIDs) == 0 {
		return info, nil
	}

	conn, err := store.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	qstring := fmt.Sprintf(`SELECT geneid, organism, annotation FROM processed WHERE geneid IN (%s);`, placeholders(len(geneIDs)))
	args := make([]any, 0, len(geneIDs))
	for _, id := range geneIDs {
		args = append(args, id)
	}

	rows, err := conn.QueryContext(ctx, qstring, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			gi                   GeneInfo
			organism, annotation sql.NullString
		)
		if err := rows.Scan(&gi.GeneID, &organism, &annotation); err != nil {
			return nil, fmt.Errorf("scan processed row: %w", err)
		}
		gi.Organism = organism.String
		gi.Annotation = annotation.String
		info[gi.GeneID] = gi
	}
	return info, rows.Err()
}
