package enrichment

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/reminisce-care/reminisce/internal/logging"
)

const (
	captionUnconfigured = "A beautiful memory to cherish."
	captionFallback     = "A special moment captured in time."

	maxTags = 10
)

// AzureVision captions photos with the Azure Image Analysis API.
// A zero endpoint or key disables the client; Analyze then returns the
// unconfigured fallback caption.
type AzureVision struct {
	client   *resty.Client
	endpoint string
	key      string
	logger   logging.Logger
}

func NewAzureVision(endpoint, key string, logger logging.Logger) *AzureVision {
	return &AzureVision{
		client:   resty.New().SetTimeout(10 * time.Second),
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		logger:   logger,
	}
}

type analyzeResponse struct {
	CaptionResult struct {
		Text string `json:"text"`
	} `json:"captionResult"`
	TagsResult struct {
		Values []struct {
			Name string `json:"name"`
		} `json:"values"`
	} `json:"tagsResult"`
}

// Analyze captions the image behind the given public URL. It never returns
// an error: any failure degrades to a fixed caption with no tags.
func (v *AzureVision) Analyze(ctx context.Context, imageURL string) Analysis {

	if v.endpoint == "" || v.key == "" {
		return Analysis{Caption: captionUnconfigured}
	}

	var out analyzeResponse

	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Ocp-Apim-Subscription-Key", v.key).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("api-version", "2024-02-01").
		SetQueryParam("features", "caption,tags").
		SetBody(map[string]string{"url": imageURL}).
		SetResult(&out).
		Post(v.endpoint + "/computervision/imageanalysis:analyze")

	if err != nil {
		v.logger.Warn(ctx, "image analysis failed", "err", err)
		return Analysis{Caption: captionFallback}
	}
	if resp.IsError() {
		v.logger.Warn(ctx, "image analysis failed", "status", resp.StatusCode())
		return Analysis{Caption: captionFallback}
	}

	caption := out.CaptionResult.Text
	if caption == "" {
		caption = captionFallback
	}

	var tags []string
	for _, t := range out.TagsResult.Values {
		if len(tags) == maxTags {
			break
		}
		tags = append(tags, t.Name)
	}

	return Analysis{Caption: caption, Tags: tags}
}
