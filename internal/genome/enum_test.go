package genome

import (
	"math/rand"
	"testing"
)

func TestNewEnumGenomeValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewEnumGenome(rng, EnumConfig[int]{Length: 0, Goodset: []int{1}}); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := NewEnumGenome(rng, EnumConfig[int]{Length: 4}); err == nil {
		t.Fatal("expected error for empty goodset")
	}
}

func TestNewEnumGenomeDrawsFromGoodset(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	goodset := []string{"a", "b", "c"}
	g, err := NewEnumGenome(rng, EnumConfig[string]{Length: 100, Goodset: goodset})
	if err != nil {
		t.Fatalf("new enum genome: %v", err)
	}
	allowed := map[string]bool{"a": true, "b": true, "c": true}
	for i, v := range g.Genes() {
		if !allowed[v] {
			t.Fatalf("gene %d is %q, not in the goodset", i, v)
		}
	}
}

func TestEnumGenomePointMutateChangesAtMostOneGene(t *testing.T) {
	genes := []int{0, 0, 0, 0, 0, 0}
	g, err := EnumGenomeFromGenes(genes, EnumConfig[int]{Goodset: []int{0, 1, 2}})
	if err != nil {
		t.Fatalf("from genes: %v", err)
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		child := g.pointMutate(rng)
		changed := 0
		for j, v := range child.Genes() {
			if v != 0 {
				changed++
			}
			if v < 0 || v > 2 {
				t.Fatalf("gene %d mutated to %d, not in the goodset", j, v)
			}
		}
		if changed > 1 {
			t.Fatalf("point mutate changed %d genes, want at most 1", changed)
		}
	}
}

func TestEnumGenomeCrossoverKeepsGenesFromParents(t *testing.T) {
	a, err := EnumGenomeFromGenes([]int{0, 0, 0, 0, 0, 0}, EnumConfig[int]{Goodset: []int{0, 1}})
	if err != nil {
		t.Fatalf("from genes: %v", err)
	}
	b, err := EnumGenomeFromGenes([]int{1, 1, 1, 1, 1, 1}, EnumConfig[int]{Goodset: []int{0, 1}})
	if err != nil {
		t.Fatalf("from genes: %v", err)
	}

	rng := rand.New(rand.NewSource(4))
	sawPartnerGene := false
	for i := 0; i < 200; i++ {
		child := a.crossover(rng, b)
		for j, v := range child.Genes() {
			if v != 0 && v != 1 {
				t.Fatalf("gene %d is %d, not from either parent", j, v)
			}
			if v == 1 {
				sawPartnerGene = true
			}
		}
	}
	if !sawPartnerGene {
		t.Fatal("crossover never took a gene from the partner")
	}
}

func TestEnumGenomeSpawnRejectsForeignPartner(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g, err := NewEnumGenome(rng, EnumConfig[int]{Length: 4, Goodset: []int{0, 1}})
	if err != nil {
		t.Fatalf("new enum genome: %v", err)
	}
	other, err := NewEnumGenome(rng, EnumConfig[string]{Length: 4, Goodset: []string{"x"}})
	if err != nil {
		t.Fatalf("new enum genome: %v", err)
	}
	if _, err := g.Spawn(rng, other); err == nil {
		t.Fatal("expected error spawning with a different gene type")
	}
}
