package book

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Direction is the reading direction of the publication. Japanese fixed layout
// books are right to left by default.
type Direction int

const (
	DirectionRTL Direction = iota
	DirectionLTR
)

var (
	directionNames = map[Direction]string{
		DirectionRTL: "rtl",
		DirectionLTR: "ltr",
	}
	directionValues = map[string]Direction{
		"rtl": DirectionRTL,
		"ltr": DirectionLTR,
	}
)

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts string to Direction value.
func ParseDirection(s string) (Direction, error) {
	if d, ok := directionValues[s]; ok {
		return d, nil
	}
	return DirectionRTL, fmt.Errorf("unknown page progression direction [%s]", s)
}

func (d Direction) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Direction) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Layout selects between fixed and reflowable rendition.
type Layout int

const (
	LayoutPrePaginated Layout = iota
	LayoutReflowable
)

var (
	layoutNames = map[Layout]string{
		LayoutPrePaginated: "pre-paginated",
		LayoutReflowable:   "reflowable",
	}
	layoutValues = map[string]Layout{
		"pre-paginated": LayoutPrePaginated,
		"reflowable":    LayoutReflowable,
	}
)

func (l Layout) String() string {
	if s, ok := layoutNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout converts string to Layout value.
func ParseLayout(s string) (Layout, error) {
	if l, ok := layoutValues[s]; ok {
		return l, nil
	}
	return LayoutPrePaginated, fmt.Errorf("unknown rendition layout [%s]", s)
}

func (l Layout) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

func (l *Layout) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseLayout(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Orientation constrains device orientation for the publication.
type Orientation int

const (
	OrientationAuto Orientation = iota
	OrientationLandscape
	OrientationPortrait
)

var (
	orientationNames = map[Orientation]string{
		OrientationAuto:      "auto",
		OrientationLandscape: "landscape",
		OrientationPortrait:  "portrait",
	}
	orientationValues = map[string]Orientation{
		"auto":      OrientationAuto,
		"landscape": OrientationLandscape,
		"portrait":  OrientationPortrait,
	}
)

func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation converts string to Orientation value.
func ParseOrientation(s string) (Orientation, error) {
	if o, ok := orientationValues[s]; ok {
		return o, nil
	}
	return OrientationAuto, fmt.Errorf("unknown rendition orientation [%s]", s)
}

func (o Orientation) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

func (o *Orientation) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Spread controls synthetic spread behavior.
type Spread int

const (
	SpreadAuto Spread = iota
	SpreadNone
	SpreadLandscape
	SpreadBoth
)

var (
	spreadNames = map[Spread]string{
		SpreadAuto:      "auto",
		SpreadNone:      "none",
		SpreadLandscape: "landscape",
		SpreadBoth:      "both",
	}
	spreadValues = map[string]Spread{
		"auto":      SpreadAuto,
		"none":      SpreadNone,
		"landscape": SpreadLandscape,
		"both":      SpreadBoth,
	}
)

func (s Spread) String() string {
	if n, ok := spreadNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Spread(%d)", int(s))
}

// ParseSpread converts string to Spread value.
func ParseSpread(s string) (Spread, error) {
	if v, ok := spreadValues[s]; ok {
		return v, nil
	}
	return SpreadAuto, fmt.Errorf("unknown rendition spread [%s]", s)
}

func (s Spread) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Spread) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return err
	}
	v, err := ParseSpread(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TitleType classifies title entries, values follow EPUB 3 title-type vocabulary.
type TitleType int

const (
	TitleMain TitleType = iota
	TitleSubtitle
	TitleShort
	TitleCollection
	TitleEdition
	TitleExpanded
)

var (
	titleTypeNames = map[TitleType]string{
		TitleMain:       "main",
		TitleSubtitle:   "subtitle",
		TitleShort:      "short",
		TitleCollection: "collection",
		TitleEdition:    "edition",
		TitleExpanded:   "expanded",
	}
	titleTypeValues = map[string]TitleType{
		"main":       TitleMain,
		"subtitle":   TitleSubtitle,
		"short":      TitleShort,
		"collection": TitleCollection,
		"edition":    TitleEdition,
		"expanded":   TitleExpanded,
	}
)

func (t TitleType) String() string {
	if s, ok := titleTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TitleType(%d)", int(t))
}

// ParseTitleType converts string to TitleType value.
func ParseTitleType(s string) (TitleType, error) {
	if t, ok := titleTypeValues[s]; ok {
		return t, nil
	}
	return TitleMain, fmt.Errorf("unknown title type [%s]", s)
}

func (t TitleType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *TitleType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseTitleType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// CollectionType follows EPUB 3 collection-type vocabulary.
type CollectionType int

const (
	CollectionSeries CollectionType = iota
	CollectionSet
)

var (
	collectionTypeNames = map[CollectionType]string{
		CollectionSeries: "series",
		CollectionSet:    "set",
	}
	collectionTypeValues = map[string]CollectionType{
		"series": CollectionSeries,
		"set":    CollectionSet,
	}
)

func (c CollectionType) String() string {
	if s, ok := collectionTypeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CollectionType(%d)", int(c))
}

// ParseCollectionType converts string to CollectionType value.
func ParseCollectionType(s string) (CollectionType, error) {
	if c, ok := collectionTypeValues[s]; ok {
		return c, nil
	}
	return CollectionSeries, fmt.Errorf("unknown collection type [%s]", s)
}

func (c CollectionType) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *CollectionType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseCollectionType(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
