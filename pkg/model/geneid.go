package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadGeneID = errors.New("gene id is not of the form fig|<organism>.peg.<n>")

const (
	figPrefix    = "fig|"
	pegSeparator = ".peg."
)

// GeneID is a RAST gene identifier, fig|190192.1.peg.123.
type GeneID struct {
	Genome string // "fig|190192.1"
	Peg    string // "123"
}

func ParseGeneID(id string) (GeneID, error) {
	genome, peg, ok := strings.Cut(id, pegSeparator)
	if !ok || genome == "" || peg == "" {
		return GeneID{}, fmt.Errorf("%w: %q", ErrBadGeneID, id)
	}
	return GeneID{Genome: genome, Peg: peg}, nil
}

// OrganismID drops the fig| prefix: "190192.1".
func (g GeneID) OrganismID() string {
	return strings.TrimPrefix(g.Genome, figPrefix)
}

func (g GeneID) String() string {
	return g.Genome + pegSeparator + g.Peg
}

// SpeciesOf returns the organism a tree leaf belongs to.
// Protein tree leaves are gene ids; organism tree leaves are the organism itself.
func SpeciesOf(leafName string) string {
	if !strings.Contains(leafName, "peg") {
		return leafName
	}
	gid, err := ParseGeneID(leafName)
	if err != nil {
		return leafName
	}
	return gid.Genome
}

// OrganismIDOf strips the fig| prefix from a genome name.
func OrganismIDOf(genome string) string {
	return strings.TrimPrefix(genome, figPrefix)
}
