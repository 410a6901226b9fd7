// Package verse selects Quran verses deterministically by date.
package verse

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Errors.
var (
	ErrEmptyPool = errors.New("verse pool is empty")
)

// Verse is one entry of the verse dataset. The JSON tags match the bundled
// dataset format.
type Verse struct {
	ID              int    `json:"id"`
	SurahNumber     int    `json:"surah_number"`
	VerseNumber     int    `json:"verse_number"`
	Text            string `json:"text"` // Turkish translation
	ArabicText      string `json:"arabic_text"`
	JuzNumber       int    `json:"juz_number"`
	PageNumber      int    `json:"page_number"`
	SurahNameTR     string `json:"surah_name_turkish"`
	SurahNameArabic string `json:"surah_name_arabic"`
}

// Reference renders the verse position as "Surah 1:1".
func (v Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.SurahNameTR, v.SurahNumber, v.VerseNumber)
}

// Surah is a chapter summary derived from the pool.
type Surah struct {
	Number     int
	NameTR     string
	NameArabic string
	VerseCount int
}

// Pool is a fixed verse collection. Construct it once at startup and pass it
// where needed; it replaces the module-level dataset cache of earlier
// designs with an owned object.
type Pool struct {
	verses []Verse
	surahs []Surah // derived at construction
}

// NewPool builds a pool from a verse slice.
func NewPool(verses []Verse) (*Pool, error) {
	if len(verses) == 0 {
		return nil, ErrEmptyPool
	}
	return &Pool{verses: verses, surahs: deriveSurahs(verses)}, nil
}

// LoadPool reads a verse dataset from a JSON file.
func LoadPool(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading verse dataset: %w", err)
	}
	var verses []Verse
	if err := json.Unmarshal(data, &verses); err != nil {
		return nil, fmt.Errorf("parsing verse dataset: %w", err)
	}
	return NewPool(verses)
}

// Len returns the pool size.
func (p *Pool) Len() int { return len(p.verses) }

// Verses returns the full verse list.
func (p *Pool) Verses() []Verse { return p.verses }

// ByID returns the verse with the given id, or ok=false.
func (p *Pool) ByID(id int) (Verse, bool) {
	for _, v := range p.verses {
		if v.ID == id {
			return v, true
		}
	}
	return Verse{}, false
}

// Surahs returns the chapter list derived from the pool, ordered by number.
func (p *Pool) Surahs() []Surah { return p.surahs }

// ForDate returns the verse of the day for a YYYY-MM-DD date string. The
// same (date, seed) pair always selects the same verse, keeping the live
// screen and a notification fired later that day consistent. An optional
// seed picks a different but equally stable verse for the same date.
func (p *Pool) ForDate(date, seed string) Verse {
	input := date
	if seed != "" {
		input = date + "-" + seed
	}
	return p.verses[hashString(input)%len(p.verses)]
}

// hashString maps a string to a non-negative int using the classic
// (h<<5)-h+c rolling hash with 32-bit wraparound. Kept bit-compatible with
// the dataset's historical selector so a given date keeps its verse across
// versions.
func hashString(s string) int {
	var h int32
	for _, r := range s {
		h = (h << 5) - h + int32(r)
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

func deriveSurahs(verses []Verse) []Surah {
	byNumber := make(map[int]*Surah)
	for _, v := range verses {
		if s, ok := byNumber[v.SurahNumber]; ok {
			s.VerseCount++
			continue
		}
		byNumber[v.SurahNumber] = &Surah{
			Number:     v.SurahNumber,
			NameTR:     v.SurahNameTR,
			NameArabic: v.SurahNameArabic,
			VerseCount: 1,
		}
	}

	out := make([]Surah, 0, len(byNumber))
	for _, s := range byNumber {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
