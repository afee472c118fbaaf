package gapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const (
	driveBase       = "https://www.googleapis.com/drive/v3"
	driveUploadBase = "https://www.googleapis.com/upload/drive/v3"
)

type Drive struct {
	c Doer
}

func NewDrive(c Doer) Drive { return Drive{c: c} }

func (d Drive) ListFiles(ctx context.Context, q string, pageSize int, pageToken, orderBy string) (map[string]any, error) {
	v := url.Values{
		"pageSize": {strconv.Itoa(pageSize)},
		"fields":   {"nextPageToken,files(id,name,mimeType,modifiedTime,size,owners)"},
	}
	if q != "" {
		v.Set("q", q)
	}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	if orderBy != "" {
		v.Set("orderBy", orderBy)
	}
	return d.c.Get(ctx, driveBase+"/files"+query(v))
}

func (d Drive) GetFile(ctx context.Context, fileID string) (map[string]any, error) {
	return d.c.Get(ctx, fmt.Sprintf("%s/files/%s?fields=*", driveBase, fileID))
}

func (d Drive) UploadFile(ctx context.Context, metadata map[string]any, content []byte, mimeType string) (map[string]any, error) {
	return d.c.Upload(ctx, driveUploadBase+"/files?uploadType=multipart", metadata, content, mimeType)
}

func (d Drive) CreateFolder(ctx context.Context, name, parent string) (map[string]any, error) {
	meta := map[string]any{
		"name":     name,
		"mimeType": "application/vnd.google-apps.folder",
	}
	if parent != "" {
		meta["parents"] = []string{parent}
	}
	return d.c.Post(ctx, driveBase+"/files", meta)
}

func (d Drive) DeleteFile(ctx context.Context, fileID string) (map[string]any, error) {
	return d.c.Delete(ctx, fmt.Sprintf("%s/files/%s", driveBase, fileID))
}

func (d Drive) GetAbout(ctx context.Context) (map[string]any, error) {
	return d.c.Get(ctx, driveBase+"/about?fields=storageQuota,user")
}

func (d Drive) ListSharedDrives(ctx context.Context, pageToken string) (map[string]any, error) {
	v := url.Values{}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return d.c.Get(ctx, driveBase+"/drives"+query(v))
}

func (d Drive) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	return d.c.Download(ctx, fmt.Sprintf("%s/files/%s?alt=media", driveBase, fileID))
}

func (d Drive) ExportFile(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	v := url.Values{"mimeType": {mimeType}}
	return d.c.Download(ctx, fmt.Sprintf("%s/files/%s/export%s", driveBase, fileID, query(v)))
}
