package songmatch

import (
	"github.com/samber/lo"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/internal/normalization"
)

// TitleForms returns the raw title followed by its cleaned sub-forms: dash
// suffix, trailing (...) group, trailing [...] group, trailing (feat. ...)
// group and trailing feat. suffix removed. Empty and repeated forms are dropped.
func TitleForms(title string) []string {
	return normalization.TitleForms(title)
}

// GenerateVariants expands a track into the texts a guess is compared against,
// in order: title forms, each artist alone, then for each artist every
// "artist title" and "title artist" combination. Only the first
// maxComboArtists artists are combined; 0 combines all of them. Variants with
// repeated text keep their first occurrence.
func GenerateVariants(track TrackDescriptor, maxComboArtists int) []Variant {
	forms := TitleForms(track.Title)
	artists := track.ArtistNames()

	comboArtists := artists
	if maxComboArtists > 0 && len(comboArtists) > maxComboArtists {
		comboArtists = comboArtists[:maxComboArtists]
	}

	variants := make([]Variant, 0, len(forms)+len(artists)+2*len(comboArtists)*len(forms))

	for _, form := range forms {
		variants = append(variants, Variant{
			Text:        form,
			Kind:        KindTitle,
			SourceTitle: form,
		})
	}

	for _, artist := range artists {
		variants = append(variants, Variant{
			Text:         artist,
			Kind:         KindArtist,
			SourceTitle:  track.Title,
			SourceArtist: artist,
		})
	}

	for _, artist := range comboArtists {
		for _, form := range forms {
			variants = append(variants,
				Variant{
					Text:         artist + " " + form,
					Kind:         KindArtistTitle,
					SourceTitle:  form,
					SourceArtist: artist,
				},
				Variant{
					Text:         form + " " + artist,
					Kind:         KindTitleArtist,
					SourceTitle:  form,
					SourceArtist: artist,
				},
			)
		}
	}

	return lo.UniqBy(variants, func(v Variant) string {
		return v.Text
	})
}
