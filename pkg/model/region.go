package model

import "slices"

// RegionIndex holds the fetched region of every center gene.
type RegionIndex map[string]*Region

// Characteristic selects one attribute of a GeneFeature.
type Characteristic int

const (
	CharCluster Characteristic = iota
	CharStrand
	CharID
)

func (c Characteristic) String() string {
	switch c {
	case CharCluster:
		return "cluster"
	case CharStrand:
		return "strand"
	case CharID:
		return "id"
	}
	return "unknown"
}

// Value returns the selected attribute of f as a string.
func (c Characteristic) Value(f *GeneFeature) string {
	switch c {
	case CharCluster:
		return string(f.Cluster)
	case CharStrand:
		return f.Strand.String()
	case CharID:
		return f.ID
	}
	return ""
}

// Collect returns the characteristic of every feature in the index, one value
// per occurrence. With restrict, only those center genes are read.
// Regions are visited in sorted center-gene order.
func (idx RegionIndex) Collect(c Characteristic, restrict ...string) []string {
	centers := restrict
	if len(centers) == 0 {
		centers = idx.Centers()
	}
	var out []string
	for _, center := range centers {
		region, ok := idx[center]
		if !ok {
			continue
		}
		for _, f := range region.Features {
			out = append(out, c.Value(f))
		}
	}
	return out
}

// Clusters is Collect(CharCluster) with the ClusterID type kept.
func (idx RegionIndex) Clusters(restrict ...string) []ClusterID {
	values := idx.Collect(CharCluster, restrict...)
	out := make([]ClusterID, len(values))
	for i, v := range values {
		out[i] = ClusterID(v)
	}
	return out
}

func (idx RegionIndex) Centers() []string {
	centers := make([]string, 0, len(idx))
	for c := range idx {
		centers = append(centers, c)
	}
	slices.Sort(centers)
	return centers
}
