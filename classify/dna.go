package classify

import "github.com/coregx/seqclass/seqio/orf"

// ClassifyDNA delegates ORF extraction to extractor, then runs
// ClassifyProtein on each candidate frame, returning one Result per
// frame in the extractor's frame order (len(results) == int(mode) unless
// the extractor returns fewer).
func (c *Classifier) ClassifyDNA(seq string, mode orf.Mode, extractor orf.Extractor) []Result {
	frames := extractor.Extract(seq, mode)
	results := make([]Result, len(frames))
	for i, frame := range frames {
		results[i] = c.ClassifyProtein(frame)
	}
	return results
}
