package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ggdb "github.com/yumyai/ggregion/pkg/db"
)

var ErrAmbiguousRun = errors.New("cluster run id is required")

// placeholders returns "?, ?, ?" for an IN clause of n values.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// GetClusterIDs maps each gene to its cluster in runID. Genes without an
// assignment are absent from the map.
func GetClusterIDs(ctx context.Context, store *ggdb.GGDB, geneIDs []string, runID string) (map[string]ClusterID, error) {

	lookupcluster := make(map[string]ClusterID, len(geneIDs))
	if len(geneIDs) == 0 {
		return lookupcluster, nil
	}

	conn, err := store.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// IN query needs one ? per gene
	qstring := fmt.Sprintf(`SELECT geneid, clusterid FROM clusters WHERE geneid IN (%s) AND runid = ?;`, placeholders(len(geneIDs)))

	args := make([]any, 0, len(geneIDs)+1)
	for _, id := range geneIDs {
		args = append(args, id)
	}
	args = append(args, runID)

	rows, err := conn.QueryContext(ctx, qstring, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var geneid, clusterid string
		if err := rows.Scan(&geneid, &clusterid); err != nil {
			return nil, fmt.Errorf("scan cluster row: %w", err)
		}
		lookupcluster[geneid] = ClusterID(clusterid)
	}
	return lookupcluster, rows.Err()
}

// GetRunIDs lists the clustering runs present in the store.
func GetRunIDs(ctx context.Context, store *ggdb.GGDB) ([]string, error) {

	conn, err := store.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `SELECT DISTINCT runid FROM clusters ORDER BY runid;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var run string
		if err := rows.Scan(&run); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ResolveRunID returns runID unchanged when set. Otherwise the store must hold
// exactly one run, which is used.
func ResolveRunID(ctx context.Context, store *ggdb.GGDB, runID string) (string, error) {
	if runID != "" {
		return runID, nil
	}
	runs, err := GetRunIDs(ctx, store)
	if err != nil {
		return "", err
	}
	if len(runs) != 1 {
		return "", fmt.Errorf("%w: store has %d runs %v", ErrAmbiguousRun, len(runs), runs)
	}
	return runs[0], nil
}
