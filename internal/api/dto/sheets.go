package dto

type SheetOptionResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ListSheetsResponse struct {
	Options []SheetOptionResponse `json:"options"`
}

type SliderMarkResponse struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type DateSliderResponse struct {
	Min   int                  `json:"min"`
	Max   int                  `json:"max"`
	Marks []SliderMarkResponse `json:"marks"`
}

type DepthSliderResponse struct {
	Min   int                  `json:"min"`
	Max   int                  `json:"max"`
	Value int                  `json:"value"`
	Marks []SliderMarkResponse `json:"marks"`
}
