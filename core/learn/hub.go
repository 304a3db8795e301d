package learn

import (
	"context"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/view"
)

// HubItem is one card in any of the AI hub's four sections.
type HubItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
	CourseID    int    `json:"course_id"`
	MediaURL    string `json:"media_url"`
}

// HubData is the /learning/ai-hub response.
type HubData struct {
	Recommendations []HubItem `json:"recommendations"`
	VideoExplainers []HubItem `json:"video_explainers"`
	AudioSummaries  []HubItem `json:"audio_summaries"`
	Walkthroughs    []HubItem `json:"walkthroughs"`
}

// HubController fetches the AI learning hub sections. A failed fetch
// degrades to empty sections; the page renders its fallbacks.
type HubController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	data HubData
}

func NewHubController(gw *api.Client, logger core.Logger) *HubController {
	return &HubController{gw: gw, log: logger}
}

func (c *HubController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}
	var data HubData
	err := c.gw.Get(ctx, "/learning/ai-hub", &data)
	if err != nil {
		c.log.Error("ai hub: fetch failed", err)
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.data = data })
	c.Finish(nil)
	return nil
}

func (c *HubController) Data() HubData {
	var data HubData
	c.Apply(func() { data = c.data })
	return data
}
