package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"flipbook/config"
	"flipbook/convert"
	"flipbook/history"
	"flipbook/logger"
	"flipbook/models"
	"flipbook/publish"
	"flipbook/utils"
)

const maxFormMemory = 32 << 20 // 32 MB

type artifactResponse struct {
	URL    string          `json:"url"`
	Frames int             `json:"frames"`
	Bytes  int             `json:"bytes"`
	Static bool            `json:"static,omitempty"`
	Config models.Settings `json:"settings"`
}

type convertResponse struct {
	ID        string            `json:"id"`
	Animation *artifactResponse `json:"animation,omitempty"`
	Document  *artifactResponse `json:"document,omitempty"`
}

// ConvertHandler accepts a multipart upload of ordered images plus form
// options, runs the conversion synchronously and publishes the artifacts to
// the direct-serve tree.
func ConvertHandler(conv *convert.Converter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
			return
		}

		files := r.MultipartForm.File["images"]
		if len(files) == 0 {
			http.Error(w, "No images provided", http.StatusBadRequest)
			return
		}
		if len(files) > models.MaxImages {
			http.Error(w, fmt.Sprintf("Too many images (max %d)", models.MaxImages), http.StatusBadRequest)
			return
		}

		// Part order in the form is the frame order in the artifact.
		images := make([][]byte, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				http.Error(w, "Failed to read uploaded image", http.StatusBadRequest)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				http.Error(w, "Failed to read uploaded image", http.StatusBadRequest)
				return
			}
			images = append(images, data)
		}

		opts := optionsFromForm(r)
		kinds := kindsFromForm(r)

		id, err := utils.RandomID(12)
		if err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		result, err := conv.Convert(r.Context(), images, opts, kinds)
		if err != nil {
			storeOutcome(history.Record{ID: id, Kinds: kindStrings(kinds), Error: err.Error()})
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, convert.ErrEmptyInput), errors.Is(err, convert.ErrInput):
				status = http.StatusBadRequest
			case errors.Is(err, convert.ErrEncodingFailed):
				status = http.StatusBadGateway
			}
			http.Error(w, fmt.Sprintf("Conversion failed: %v", err), status)
			return
		}

		resp := convertResponse{ID: id}
		rec := history.Record{ID: id, Kinds: kindStrings(kinds)}

		if result.Animation != nil {
			ar, err := publishArtifact(r, id, result.Animation, "gif")
			if err != nil {
				http.Error(w, fmt.Sprintf("Publish failed: %v", err), http.StatusInternalServerError)
				return
			}
			resp.Animation = ar
			rec.Frames = result.Animation.Frames
			rec.Bytes += result.Animation.Size
		}
		if result.Document != nil {
			ar, err := publishArtifact(r, id, result.Document, "pdf")
			if err != nil {
				http.Error(w, fmt.Sprintf("Publish failed: %v", err), http.StatusInternalServerError)
				return
			}
			resp.Document = ar
			rec.Pages = result.Document.Frames
			rec.Bytes += result.Document.Size
		}

		storeOutcome(rec)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Errorf("Failed to encode convert response: %v", err)
		}
	}
}

func publishArtifact(r *http.Request, id string, art *models.EncodedArtifact, ext string) (*artifactResponse, error) {
	backend := config.GetPublishBackend()
	accessInfo := config.GetPublishAccessInfo()
	name := fmt.Sprintf("%s.%s", art.Kind, ext)
	switch backend {
	case "s3":
		accessInfo["key"] = id + "/" + name
	case "gcs":
		accessInfo["object"] = id + "/" + name
	case "sftp":
		accessInfo["remotePath"] = path.Join(accessInfo["remoteDir"], id, name)
	default:
		accessInfo["folder"] = id
		accessInfo["filename"] = name
	}
	url, err := publish.Publish(r.Context(), accessInfo, bytes.NewReader(art.Data), backend)
	if err != nil {
		return nil, err
	}
	return &artifactResponse{
		URL:    url,
		Frames: art.Frames,
		Bytes:  art.Size,
		Static: art.Settings.Static,
		Config: art.Settings,
	}, nil
}

func storeOutcome(rec history.Record) {
	if err := history.Store(rec); err != nil {
		// History is advisory; a store failure never fails the request.
		logger.Errorf("Failed to store history record %s: %v", rec.ID, err)
	}
}

func optionsFromForm(r *http.Request) models.Options {
	return models.Options{
		Width:         formInt(r, "width"),
		Height:        formInt(r, "height"),
		DelayMS:       formInt(r, "delay"),
		Loop:          formInt(r, "loop"),
		Tier:          r.FormValue("quality"),
		PageFormat:    r.FormValue("format"),
		EmbedQuality:  formInt(r, "embed_quality"),
		Optimize:      formBool(r, "optimize"),
		PanelsPerPage: formInt(r, "panels_per_page"),
		PageNumbers:   formBool(r, "page_numbers"),
	}
}

func kindsFromForm(r *http.Request) []models.Kind {
	raw := r.FormValue("kinds")
	if raw == "" {
		return []models.Kind{models.KindAnimation}
	}
	var kinds []models.Kind
	for _, k := range strings.Split(raw, ",") {
		kinds = append(kinds, models.Kind(strings.TrimSpace(k)))
	}
	return kinds
}

func kindStrings(kinds []models.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func formInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0
	}
	return v
}

func formBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.FormValue(key))
	return v
}
