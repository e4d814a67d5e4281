// Model for fetching the genes around a center gene

package model

import (
	"context"
	"errors"
	"fmt"

	ggdb "github.com/yumyai/ggregion/pkg/db"
)

var ErrNoNeighborhood = errors.New("no neighborhood recorded for gene")

// MissingClusterError reports a neighbor gene without a cluster in the requested run.
type MissingClusterError struct {
	GeneID string
	RunID  string
}

func (e *MissingClusterError) Error() string {
	return fmt.Sprintf("gene %s has no cluster assignment in run %s", e.GeneID, e.RunID)
}

type neighborQuery struct {
	neighborgene string
	strand       string
	annotation   string
	genestart    int64
	geneend      int64
}

func getNeighbors(ctx context.Context, store *ggdb.GGDB, geneID string) ([]*neighborQuery, error) {

	conn, err := store.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	qstring := `
		SELECT n.neighborgene, n.strand, p.annotation, p.genestart, p.geneend
		FROM neighborhoods n
		INNER JOIN processed p ON p.geneid = n.neighborgene
		WHERE n.centergene = ?
		ORDER BY CASE WHEN p.genestart < p.geneend THEN p.genestart ELSE p.geneend END, n.neighborgene;
	`

	stm, err := conn.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, geneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	neighbors := make([]*neighborQuery, 0, 20)
	for rows.Next() {
		var (
			r          neighborQuery
			annotation *string
		)
		if err := rows.Scan(&r.neighborgene, &r.strand, &annotation, &r.genestart, &r.geneend); err != nil {
			return nil, fmt.Errorf("scan neighbor of %s: %w", geneID, err)
		}
		if annotation != nil {
			r.annotation = *annotation
		}
		neighbors = append(neighbors, &r)
	}
	return neighbors, rows.Err()
}

// GetGeneNeighborhood returns the genes around geneID, ordered by position,
// with the cluster each was assigned to in runID.
func GetGeneNeighborhood(ctx context.Context, store *ggdb.GGDB, geneID, runID string) (*Region, error) {

	neighbors, err := getNeighbors(ctx, store, geneID)
	if err != nil {
		return nil, fmt.Errorf("neighborhood of %s: %w", geneID, err)
	}
	if len(neighbors) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoNeighborhood, geneID)
	}

	ids := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		ids = append(ids, n.neighborgene)
	}

	lookupcluster, err := GetClusterIDs(ctx, store, ids, runID)
	if err != nil {
		return nil, fmt.Errorf("clusters around %s: %w", geneID, err)
	}

	region := &Region{CenterGene: geneID, Features: make([]*GeneFeature, 0, len(neighbors))}
	for _, n := range neighbors {
		cluster, ok := lookupcluster[n.neighborgene]
		if !ok {
			return nil, &MissingClusterError{GeneID: n.neighborgene, RunID: runID}
		}
		strand, err := ParseStrand(n.strand)
		if err != nil {
			return nil, fmt.Errorf("neighbor %s: %w", n.neighborgene, err)
		}
		region.Features = append(region.Features, &GeneFeature{
			ID:         n.neighborgene,
			Start:      n.genestart,
			End:        n.geneend,
			Strand:     strand,
			Cluster:    cluster,
			Annotation: n.annotation,
		})
	}

	return region, nil
}
