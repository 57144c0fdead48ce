package bibtex

import "testing"

const twoRecords = `@article{smith2020,
  title = {Deep Learning for NLP},
  year = {2020},
}

@book{doe2019,
  title = {Parsing in Practice},
  year = {2019},
}
`

func TestScanBlocks_WellFormed(t *testing.T) {
	blocks := ScanBlocks(twoRecords)

	if len(blocks) != 2 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 2", len(blocks))
	}
	if blocks[0].Key != "smith2020" || blocks[1].Key != "doe2019" {
		t.Errorf("ScanBlocks() keys = %q, %q, want smith2020, doe2019", blocks[0].Key, blocks[1].Key)
	}
}

func TestScanBlocks_NestedBracesDoNotSplit(t *testing.T) {
	raw := `@article{nested2021,
  title = {A {Nested} Title with {Deep {Braces}}},
  year = {2021},
}
`
	blocks := ScanBlocks(raw)
	if len(blocks) != 1 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 1", len(blocks))
	}
	if blocks[0].Key != "nested2021" {
		t.Errorf("ScanBlocks() key = %q, want nested2021", blocks[0].Key)
	}
}

func TestScanBlocks_AtSignInsideOpenBlock(t *testing.T) {
	// The "@misc" line sits at non-zero depth, so it belongs to the first
	// record rather than starting a new one.
	raw := `@article{open2022,
  note = {see
@misc{inner,
  title = {x},
}
  for details},
}
`
	blocks := ScanBlocks(raw)
	if len(blocks) != 1 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 1", len(blocks))
	}
	if blocks[0].Key != "open2022" {
		t.Errorf("ScanBlocks() key = %q, want open2022", blocks[0].Key)
	}
}

func TestScanBlocks_LeadingJunkIgnored(t *testing.T) {
	raw := "This file was exported by hand.\n\n" + twoRecords
	blocks := ScanBlocks(raw)
	if len(blocks) != 2 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 2", len(blocks))
	}
}

func TestScanBlocks_KeylessBlockDropped(t *testing.T) {
	raw := `@article
{orphan}

@article{kept2020,
  year = {2020},
}
`
	blocks := ScanBlocks(raw)
	if len(blocks) != 1 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 1", len(blocks))
	}
	if blocks[0].Key != "kept2020" {
		t.Errorf("ScanBlocks() key = %q, want kept2020", blocks[0].Key)
	}
}

func TestScanBlocks_UnbalancedTrailingBlockFlushed(t *testing.T) {
	raw := `@article{truncated2023,
  title = {Cut Off Mid
`
	blocks := ScanBlocks(raw)
	if len(blocks) != 1 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 1", len(blocks))
	}
	if blocks[0].Key != "truncated2023" {
		t.Errorf("ScanBlocks() key = %q, want truncated2023", blocks[0].Key)
	}
}

func TestScanBlocks_Empty(t *testing.T) {
	if blocks := ScanBlocks(""); len(blocks) != 0 {
		t.Errorf("ScanBlocks(\"\") returned %d blocks, want 0", len(blocks))
	}
}
