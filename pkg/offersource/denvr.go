package offersource

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/davidcollom/denvr-catalog/pkg/logger"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	DefaultDenvrBaseURL  = "https://api.cloud.denvrdata.com"
	OnDemandResourcePool = "on-demand"

	denvrAuthPath         = "/api/TokenAuth/Authenticate"
	denvrAvailabilityPath = "/api/v1/servers/virtual/GetAvailability"
)

type DenvrOfferingSource struct {
	BaseURL      string
	ResourcePool string
	HTTPClient   *http.Client
}

type denvrAuthRequest struct {
	UserNameOrEmailAddress string `json:"userNameOrEmailAddress"`
	Password               string `json:"password"`
}

func NewDenvrOfferingSource(baseURL, resourcePool string) *DenvrOfferingSource {
	if baseURL == "" {
		baseURL = DefaultDenvrBaseURL
	}
	if resourcePool == "" {
		resourcePool = OnDemandResourcePool
	}
	return &DenvrOfferingSource{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ResourcePool: resourcePool,
		HTTPClient:   http.DefaultClient,
	}
}

func (s *DenvrOfferingSource) Name() string {
	return "Denvr Cloud"
}

func (s *DenvrOfferingSource) Authenticate(ctx context.Context, creds Credentials) (Tokens, error) {
	endpoint := s.BaseURL + denvrAuthPath
	payload, err := json.Marshal(denvrAuthRequest{
		UserNameOrEmailAddress: creds.Username,
		Password:               creds.Password,
	})
	if err != nil {
		return Tokens{}, errors.Wrap(err, "could not encode authentication request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Tokens{}, errors.Wrapf(ErrAuthentication, "could not build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json-patch+json")

	body, err := s.do(req)
	if err != nil {
		return Tokens{}, errors.Wrapf(ErrAuthentication, "POST %s: %v", endpoint, err)
	}

	if !gjson.ValidBytes(body) {
		return Tokens{}, errors.Wrap(ErrMalformedResponse, "authentication response is not valid JSON")
	}
	access := gjson.GetBytes(body, "result.accessToken")
	refresh := gjson.GetBytes(body, "result.refreshToken")
	if access.Type != gjson.String || access.Str == "" {
		return Tokens{}, errors.Wrap(ErrMalformedResponse, "authentication response has no result.accessToken")
	}
	if refresh.Type != gjson.String || refresh.Str == "" {
		return Tokens{}, errors.Wrap(ErrMalformedResponse, "authentication response has no result.refreshToken")
	}

	logger.Debugf("Authenticated with %s as %s", s.Name(), creds.Username)
	return Tokens{AccessToken: access.Str, RefreshToken: refresh.Str}, nil
}

func (s *DenvrOfferingSource) GetOfferings(ctx context.Context, cluster string, tokens Tokens) ([]VMOffering, error) {
	query := url.Values{}
	query.Set("cluster", cluster)
	query.Set("resourcePool", s.ResourcePool)
	endpoint := s.BaseURL + denvrAvailabilityPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrFetch, "could not build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	req.Header.Set("encryptedAccessToken", tokens.RefreshToken)
	req.Header.Set("Content-Type", "application/json")

	body, err := s.do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrFetch, "GET %s: %v", endpoint, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.Wrapf(ErrMalformedResponse, "availability response for %s is not valid JSON", cluster)
	}

	items := gjson.GetBytes(body, "result.items")
	if !items.Exists() || items.Type == gjson.Null {
		logger.WithCluster(cluster).Debug("No items in availability response")
		return []VMOffering{}, nil
	}
	if !items.IsArray() {
		return nil, errors.Wrapf(ErrMalformedResponse, "result.items for %s is not a list", cluster)
	}

	var offerings []VMOffering
	for i, item := range items.Array() {
		if !item.IsObject() {
			return nil, errors.Wrapf(ErrMalformedResponse, "result.items[%d] for %s is not an object", i, cluster)
		}
		offering := newVMOffering(item)
		logger.Debugf("%# v", pretty.Formatter(offering))
		offerings = append(offerings, offering)
	}
	if offerings == nil {
		offerings = []VMOffering{}
	}
	return offerings, nil
}

func (s *DenvrOfferingSource) do(req *http.Request) ([]byte, error) {
	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("unexpected status %s", resp.Status)
	}
	return body, nil
}

func newVMOffering(item gjson.Result) VMOffering {
	// The API names the resource pool "rpool".
	pool := item.Get("rpool")
	if !pool.Exists() {
		pool = item.Get("resourcePool")
	}
	return VMOffering{
		Configuration: Text(item.Get("configuration")),
		Cluster:       Text(item.Get("cluster")),
		ResourcePool:  Text(pool),
		Type:          Text(item.Get("type")),
		Price:         item.Get("price"),
		Available:     item.Get("available"),
		Count:         item.Get("count"),
		MaxCount:      item.Get("maxCount"),
	}
}
