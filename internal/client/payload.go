// File: internal/client/payload.go
package client

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
)

const defaultMimeType = "application/octet-stream"

func jsonBody(req FirstPromptRequest) firstPromptBody {
	body := firstPromptBody{
		Models:    req.Models,
		Type:      req.Type,
		Prompt:    req.Prompt,
		Combine:   req.Combine,
		Compare:   req.Compare,
		WebSearch: req.WebSearch,
		ProjectID: req.ProjectID,
	}
	if body.Models == nil {
		body.Models = []string{}
	}

	var files []uploadedFile
	for _, a := range req.Attachments {
		if a.UUID == "" {
			continue
		}
		body.FileUUIDs = append(body.FileUUIDs, a.UUID)
		files = append(files, uploadedFile{UUID: a.UUID, FileName: a.Name, FileSize: a.Size, FileType: a.MimeType})
	}
	if len(files) > 0 {
		body.InputContent = &inputContent{UploadedFiles: files}
	}
	return body
}

// applyMultipart encodes the request as indexed form fields; raw files go
// under input_content[uploaded_files][i].
func applyMultipart(r *resty.Request, req FirstPromptRequest) {
	form := url.Values{}
	for i, m := range req.Models {
		form.Set(fmt.Sprintf("models[%d]", i), m)
	}
	form.Set("type", string(req.Type))
	form.Set("prompt", req.Prompt)
	form.Set("combine", strconv.FormatBool(req.Combine))
	form.Set("compare", strconv.FormatBool(req.Compare))
	form.Set("web_search", strconv.FormatBool(req.WebSearch))
	if req.ProjectID != "" {
		form.Set("project_id", req.ProjectID)
	}

	uploaded, raw := 0, 0
	for _, a := range req.Attachments {
		if !a.IsRaw() {
			if a.UUID != "" {
				form.Set(fmt.Sprintf("file_uuids[%d]", uploaded), a.UUID)
				uploaded++
			}
			continue
		}

		mime := a.MimeType
		if mime == "" {
			mime = defaultMimeType
		}
		size := a.Size
		if size == 0 {
			size = int64(len(a.Data))
		}

		prefix := fmt.Sprintf("input_content[uploaded_files][%d]", raw)
		form.Set(prefix+"[file_name]", a.Name)
		form.Set(prefix+"[file_size]", strconv.FormatInt(size, 10))
		form.Set(prefix+"[file_type]", mime)
		r.SetMultipartField(prefix+"[file]", a.Name, mime, bytes.NewReader(a.Data))
		raw++
	}

	r.SetFormDataFromValues(form)
}
