package value

import (
	"fmt"
	"strings"
)

type Season string

const (
	SeasonWet Season = "WET"
	SeasonDry Season = "DRY"
)

func (s Season) String() string {
	return string(s)
}

func ParseSeason(raw string) (Season, error) {
	season := Season(strings.ToUpper(raw))

	switch season {
	case SeasonWet, SeasonDry:
		return season, nil
	}

	return "", fmt.Errorf("unknown season %q", raw)
}
