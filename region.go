// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

// Region identifies a regional content variant. RegionNone selects the
// base, region-independent payload.
type Region int

const (
	RegionNone Region = iota
	RegionJapanese
	RegionUSEnglish
	RegionUSFrench
	RegionUSSpanish
	RegionEUEnglish
	RegionEUFrench
	RegionEUSpanish
	RegionEUGerman
	RegionEUDutch
	RegionEUItalian
	RegionEURussian
	RegionKorean
	RegionChinese
	RegionTaiwanChinese
)

var regionNames = map[Region]string{
	RegionNone:          "none",
	RegionJapanese:      "jp_ja",
	RegionUSEnglish:     "us_en",
	RegionUSFrench:      "us_fr",
	RegionUSSpanish:     "us_es",
	RegionEUEnglish:     "eu_en",
	RegionEUFrench:      "eu_fr",
	RegionEUSpanish:     "eu_es",
	RegionEUGerman:      "eu_de",
	RegionEUDutch:       "eu_nl",
	RegionEUItalian:     "eu_it",
	RegionEURussian:     "eu_ru",
	RegionKorean:        "kr_ko",
	RegionChinese:       "zh_cn",
	RegionTaiwanChinese: "zh_tw",
}

var regionsByName = func() map[string]Region {
	m := make(map[string]Region, len(regionNames))
	for r, s := range regionNames {
		m[s] = r
	}
	return m
}()

// String renders the region the way it appears in region.bin / archive
// filenames ("us_en", "jp_ja", ...), or "none" for RegionNone.
func (r Region) String() string {
	if s, ok := regionNames[r]; ok {
		return s
	}
	return "none"
}

// RegionFromString parses a region string such as "us_en". Unrecognized
// input resolves to RegionNone, matching the original format's fallback.
func RegionFromString(s string) Region {
	if r, ok := regionsByName[s]; ok {
		return r
	}
	return RegionNone
}

// RegionFromOrdinal clamps an arbitrary regional ordinal (as read from a
// regional file data run) into a valid Region, falling back to
// RegionNone for out-of-range values.
func RegionFromOrdinal(v int) Region {
	if v < int(RegionNone) || v > int(RegionTaiwanChinese) {
		return RegionNone
	}
	return Region(v)
}
