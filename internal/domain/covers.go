package domain

import (
	"slices"
	"sort"
)

// MaxCoverPhotos is the maximum number of images that can be promoted to the
// front of an entry's image list.
const MaxCoverPhotos = 4

// CoverSet is the set of cover-photo indices into an entry's image list,
// kept sorted ascending. The zero value is an empty set.
type CoverSet []int

// Contains reports whether index i is in the set.
func (s CoverSet) Contains(i int) bool {
	return slices.Contains(s, i)
}

// Toggle flips membership of index i. Removing always succeeds. Adding fails
// with ErrCoverLimitExceeded when the set already holds MaxCoverPhotos
// indices, and with ErrCoverIndexOutOfRange when i does not address a
// position in an image list of the given length. On failure the original set
// is returned unchanged.
func (s CoverSet) Toggle(i, imageCount int) (CoverSet, error) {
	if i < 0 || i >= imageCount {
		return s, ErrCoverIndexOutOfRange
	}
	if pos := slices.Index(s, i); pos >= 0 {
		return slices.Delete(slices.Clone(s), pos, pos+1), nil
	}
	if len(s) >= MaxCoverPhotos {
		return s, ErrCoverLimitExceeded
	}
	out := append(slices.Clone(s), i)
	sort.Ints(out)
	return out, nil
}

// RemoveImage adjusts the set for the removal of the image at index k from
// the source list: indices above k shift down by one, k itself is dropped,
// indices below k are untouched.
func (s CoverSet) RemoveImage(k int) CoverSet {
	out := make(CoverSet, 0, len(s))
	for _, idx := range s {
		switch {
		case idx < k:
			out = append(out, idx)
		case idx > k:
			out = append(out, idx-1)
		}
	}
	return out
}

// SwapImages adjusts the set for a swap of adjacent images at indices k and
// j. Cover membership follows the moved elements.
func (s CoverSet) SwapImages(k, j int) CoverSet {
	out := make(CoverSet, len(s))
	for n, idx := range s {
		switch idx {
		case k:
			out[n] = j
		case j:
			out[n] = k
		default:
			out[n] = idx
		}
	}
	sort.Ints(out)
	return out
}

// ReorderWithCoversFirst returns a permutation of images with the cover
// images (ascending index order) first, followed by the remaining images in
// their original relative order. An empty cover set yields the identity
// permutation. Indices outside the list are ignored.
func ReorderWithCoversFirst(images []string, covers CoverSet) []string {
	sorted := slices.Clone(covers)
	sort.Ints(sorted)

	out := make([]string, 0, len(images))
	for _, idx := range sorted {
		if idx >= 0 && idx < len(images) {
			out = append(out, images[idx])
		}
	}
	for i, img := range images {
		if !sorted.Contains(i) {
			out = append(out, img)
		}
	}
	return out
}
