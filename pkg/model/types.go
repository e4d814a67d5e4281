package model

import (
	"fmt"
	"strconv"
)

type Strand int8

const (
	StrandReverse Strand = -1
	StrandForward Strand = 1
)

// ParseStrand reads the '+' / '-' sign stored in the neighborhoods table.
func ParseStrand(sign string) (Strand, error) {
	switch sign {
	case "+", "1", "+1":
		return StrandForward, nil
	case "-", "-1":
		return StrandReverse, nil
	}
	return 0, fmt.Errorf("invalid strand sign %q", sign)
}

func (s Strand) String() string {
	if s == StrandReverse {
		return "-"
	}
	return "+"
}

// ClusterID is the cluster a gene was assigned to in one clustering run.
type ClusterID string

// CompareClusterIDs orders numeric ids numerically, before any non-numeric id.
func CompareClusterIDs(a, b ClusterID) int {
	ai, aerr := strconv.ParseInt(string(a), 10, 64)
	bi, berr := strconv.ParseInt(string(b), 10, 64)
	switch {
	case aerr == nil && berr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// GeneFeature is one located gene inside a neighborhood.
// Start and End are stored as found in the database, either orientation.
type GeneFeature struct {
	ID         string
	Start      int64
	End        int64
	Strand     Strand
	Cluster    ClusterID
	Annotation string
}

func (f *GeneFeature) Min() int64 {
	return min(f.Start, f.End)
}

func (f *GeneFeature) Max() int64 {
	return max(f.Start, f.End)
}

// Region is the ordered set of genes around one center gene.
type Region struct {
	CenterGene string
	Features   []*GeneFeature
}

// Center returns the feature for the center gene, if the region holds it.
func (r *Region) Center() (*GeneFeature, bool) {
	for _, f := range r.Features {
		if f.ID == r.CenterGene {
			return f, true
		}
	}
	return nil, false
}

// GeneInfo is a row of the processed table.
type GeneInfo struct {
	GeneID     string
	Organism   string
	Annotation string
}
