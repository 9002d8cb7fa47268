// Package mediasvc stores media assets (profile pictures, certificates) on Cloudinary.
package mediasvc

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

type cloudinaryService struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	http      *http.Client
}

var _ core.MediaService = (*cloudinaryService)(nil)

func NewCloudinaryService(conf *core.Config) core.MediaService {
	return &cloudinaryService{
		cloudName: conf.Cloudinary.CloudName,
		apiKey:    conf.Cloudinary.APIKey,
		apiSecret: conf.Cloudinary.APISecret,
		folder:    conf.Cloudinary.Folder,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores a base64 data-URL image. Cloudinary accepts data URIs directly
// via the "file" param.
func (svc *cloudinaryService) Upload(data string) (core.Asset, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"api_key":   svc.apiKey,
	}
	if svc.folder != "" {
		params["folder"] = svc.folder
	}
	params["signature"] = svc.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	_ = w.WriteField("file", data)
	_ = w.Close()

	body, err := svc.post(svc.url("upload"), &buf, w.FormDataContentType())
	if err != nil {
		return core.Asset{}, err
	}

	var result struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return core.Asset{}, errors.Wrap(err, "decoding cloudinary response")
	}
	return core.Asset{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// Destroy removes a previously uploaded asset.
func (svc *cloudinaryService) Destroy(publicID string) error {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"api_key":   svc.apiKey,
		"public_id": publicID,
	}
	params["signature"] = svc.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	_ = w.Close()

	_, err := svc.post(svc.url("destroy"), &buf, w.FormDataContentType())
	return err
}

func (svc *cloudinaryService) url(action string) string {
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/%s", svc.cloudName, action)
}

func (svc *cloudinaryService) post(url string, body *bytes.Buffer, contentType string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "creating cloudinary request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := svc.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling cloudinary")
	}
	defer func() { _ = resp.Body.Close() }()

	data, _ := ioutil.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, errors.Errorf("cloudinary request failed (%d): %s", resp.StatusCode, data)
	}
	return data, nil
}

// sign computes the Cloudinary API signature from the given params.
// Cloudinary excludes api_key and file from the signed payload.
func (svc *cloudinaryService) sign(params map[string]string) string {
	excludeKeys := map[string]bool{"api_key": true, "file": true, "resource_type": true}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if !excludeKeys[k] && v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)

	payload := strings.Join(pairs, "&") + svc.apiSecret
	h := sha1.New()
	h.Write([]byte(payload))
	return fmt.Sprintf("%x", h.Sum(nil))
}
