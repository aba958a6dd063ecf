package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"plexmissing/internal/logging"
	"plexmissing/internal/services"
)

const (
	productName    = "plexmissing"
	productVersion = "1.0.0"
	userAgent      = "plexmissing-Go/1.0.0"
)

// element carries the attributes shared by Directory, Video and Metadata nodes.
type element struct {
	Key        string `xml:"key,attr"`
	RatingKey  string `xml:"ratingKey,attr"`
	Type       string `xml:"type,attr"`
	Title      string `xml:"title,attr"`
	Language   string `xml:"language,attr"`
	GUID       string `xml:"guid,attr"`
	Year       string `xml:"year,attr"`
	ChildCount string `xml:"childCount,attr"`
}

type mediaContainer struct {
	XMLName     xml.Name  `xml:"MediaContainer"`
	Directories []element `xml:"Directory"`
	Videos      []element `xml:"Video"`
	Metadata    []element `xml:"Metadata"`
}

func (c *Client) getXML(ctx context.Context, path, label string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build plex %s request: %w", label, err)
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Plex-Token", c.token)
	applyStandardHeaders(req, c.clientIdentifier)

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		return services.Wrap(services.ErrExternal, "plex", label, "request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("plex request",
		logging.String("path", path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, resp.Body)
		return services.Wrap(services.ErrConfiguration, "plex", label, "server rejected plex_token", nil)
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return services.Wrap(services.ErrNotFound, "plex", label, path, nil)
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrExternal, "plex", label,
			fmt.Sprintf("returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrExternal, "plex", label, "decode response", err)
	}
	return nil
}

func applyStandardHeaders(req *http.Request, clientIdentifier string) {
	req.Header.Set("X-Plex-Client-Identifier", clientIdentifier)
	req.Header.Set("X-Plex-Product", productName)
	req.Header.Set("X-Plex-Version", productVersion)
	req.Header.Set("X-Plex-Device-Name", productName)
	req.Header.Set("X-Plex-Platform", runtime.GOOS)
}
