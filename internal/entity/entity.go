// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entity looks up award recipients in the SAM.gov entity registry
// and extracts their business classification data.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/award-enricher/internal/httputil"
	"github.com/pdiddy/award-enricher/pkg/types"
)

// ErrNotFound is returned when the registry answers with a non-200 status.
// The award is skipped.
var ErrNotFound = errors.New("entity not found")

// sba8aMarker identifies the 8(a) program among SBA business types.
const sba8aMarker = "8(a)"

// Client queries the entity registry.
type Client struct {
	http   *resty.Client
	url    string
	apiKey string
}

// NewClient returns a Client for the registry at url authenticating with apiKey.
func NewClient(httpClient *resty.Client, url, apiKey string) *Client {
	return &Client{http: httpClient, url: url, apiKey: apiKey}
}

// Lookup fetches the registry record for a legal business name and returns
// its profile. A non-200 response yields ErrNotFound; a response missing
// any expected object yields a descriptive error.
func (c *Client) Lookup(ctx context.Context, legalBusinessName string) (types.EntityProfile, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"legalBusinessName": legalBusinessName,
			"api_key":           c.apiKey,
		}).
		Get(c.url)
	if err != nil {
		return types.EntityProfile{}, fmt.Errorf("entity lookup request: %w", httputil.RedactError(err))
	}
	if res.StatusCode() != http.StatusOK {
		return types.EntityProfile{}, fmt.Errorf("%w: %q (HTTP %d)", ErrNotFound, legalBusinessName, res.StatusCode())
	}
	return Parse(res.Body())
}

// Parse extracts a profile from an entity registry response body. Only the
// first entry of entityData is read.
func Parse(body []byte) (types.EntityProfile, error) {
	var er entityResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return types.EntityProfile{}, fmt.Errorf("parsing entity response: %w", err)
	}
	if len(er.EntityData) == 0 {
		return types.EntityProfile{}, fmt.Errorf("entity response has no entityData")
	}
	e := er.EntityData[0]

	switch {
	case e.CoreData == nil:
		return types.EntityProfile{}, missing("coreData")
	case e.CoreData.EntityInformation == nil:
		return types.EntityProfile{}, missing("coreData.entityInformation")
	case e.CoreData.BusinessTypes == nil:
		return types.EntityProfile{}, missing("coreData.businessTypes")
	case e.CoreData.BusinessTypes.BusinessTypeList == nil:
		return types.EntityProfile{}, missing("coreData.businessTypes.businessTypeList")
	case e.Assertions == nil || e.Assertions.GoodsAndServices == nil:
		return types.EntityProfile{}, missing("assertions.goodsAndServices")
	case e.EntityRegistration == nil:
		return types.EntityProfile{}, missing("entityRegistration")
	}

	bt := e.CoreData.BusinessTypes
	labels := make([]string, 0, len(*bt.BusinessTypeList)+len(bt.SBABusinessTypeList))
	for _, b := range *bt.BusinessTypeList {
		if b.BusinessTypeDesc == nil {
			continue
		}
		labels = append(labels, *b.BusinessTypeDesc)
	}

	var entrance, exit string
	for _, s := range bt.SBABusinessTypeList {
		if s.SBABusinessTypeDesc == nil {
			continue
		}
		labels = append(labels, *s.SBABusinessTypeDesc)
		if strings.Contains(*s.SBABusinessTypeDesc, sba8aMarker) {
			entrance = deref(s.CertificationEntryDate)
			exit = deref(s.CertificationExitDate)
		}
	}

	return types.EntityProfile{
		URL:                 e.CoreData.EntityInformation.EntityURL,
		PrimaryNaics:        e.Assertions.GoodsAndServices.PrimaryNaics,
		SocioEconomicStatus: FilterSocioEconomic(labels),
		SBA8aEntrance:       entrance,
		SBA8aExit:           exit,
		UEISAM:              e.EntityRegistration.UEISAM,
	}, nil
}

// FilterSocioEconomic drops generic labels whose lower-cased text contains
// "corporation" or "organization". The result is never nil.
func FilterSocioEconomic(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		lower := strings.ToLower(l)
		if strings.Contains(lower, "corporation") || strings.Contains(lower, "organization") {
			continue
		}
		out = append(out, l)
	}
	return out
}

func missing(path string) error {
	return fmt.Errorf("entity response missing %s", path)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Entity registry JSON structures.
type entityResponse struct {
	TotalRecords int           `json:"totalRecords"`
	EntityData   []entityEntry `json:"entityData"`
}

type entityEntry struct {
	EntityRegistration *entityRegistration `json:"entityRegistration"`
	CoreData           *coreData           `json:"coreData"`
	Assertions         *assertions         `json:"assertions"`
}

type entityRegistration struct {
	UEISAM            string `json:"ueiSAM"`
	LegalBusinessName string `json:"legalBusinessName"`
	CageCode          string `json:"cageCode"`
}

type coreData struct {
	EntityInformation *entityInformation `json:"entityInformation"`
	BusinessTypes     *businessTypes     `json:"businessTypes"`
}

type entityInformation struct {
	EntityURL string `json:"entityURL"`
}

type businessTypes struct {
	BusinessTypeList    *[]businessType   `json:"businessTypeList"`
	SBABusinessTypeList []sbaBusinessType `json:"sbaBusinessTypeList"`
}

type businessType struct {
	BusinessTypeCode string `json:"businessTypeCode"`
	BusinessTypeDesc *string `json:"businessTypeDesc"`
}

type sbaBusinessType struct {
	SBABusinessTypeCode    string  `json:"sbaBusinessTypeCode"`
	SBABusinessTypeDesc    *string `json:"sbaBusinessTypeDesc"`
	CertificationEntryDate *string `json:"certificationEntryDate"`
	CertificationExitDate  *string `json:"certificationExitDate"`
}

type assertions struct {
	GoodsAndServices *goodsAndServices `json:"goodsAndServices"`
}

type goodsAndServices struct {
	PrimaryNaics string `json:"primaryNaics"`
}
