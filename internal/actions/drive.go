package actions

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gwork/gwork-cli/internal/apierr"
	"github.com/gwork/gwork-cli/internal/nav"
)

var driveService = service{
	name: "Drive",
	actions: []Action{
		{Name: "My Files", Run: driveList("'root' in parents and trashed=false", "modifiedTime desc")},
		{
			Name:   "Search",
			Fields: []nav.Field{field("Search Query", "name contains 'report'", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				return driveList(fieldVal(st, 0), "")(ctx, d, st)
			},
		},
		{
			Name: "Upload",
			Fields: []nav.Field{
				field("File Path", "/path/to/file.txt", true),
				field("Folder ID (optional)", "root", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				path := fieldVal(st, 0)
				content, err := os.ReadFile(path)
				if err != nil {
					return "", &apierr.IOError{Err: err}
				}
				mimeType := mime.TypeByExtension(filepath.Ext(path))
				if mimeType == "" {
					mimeType = "application/octet-stream"
				}
				name := filepath.Base(path)
				meta := map[string]any{"name": name}
				if parent := fieldVal(st, 1); parent != "" && parent != "root" {
					meta["parents"] = []string{parent}
				}
				if _, err := d.drive.UploadFile(ctx, meta, content, mimeType); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return fmt.Sprintf("uploaded %s", name), nil
			},
		},
		{
			Name: "Create Folder",
			Fields: []nav.Field{
				field("Folder Name", "New Folder", true),
				field("Parent Folder ID", "root", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				name := fieldVal(st, 0)
				if _, err := d.drive.CreateFolder(ctx, name, fieldVal(st, 1)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return fmt.Sprintf("folder %q created", name), nil
			},
		},
		{
			Name: "Download",
			Fields: []nav.Field{
				field("File ID", "paste file ID", true),
				field("Save Path", "/tmp/file.bin", true),
				field("Export MIME Type (Google docs only)", "application/pdf", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				var (
					data []byte
					err  error
				)
				if exportMime := fieldVal(st, 2); exportMime != "" {
					data, err = d.drive.ExportFile(ctx, fieldVal(st, 0), exportMime)
				} else {
					data, err = d.drive.DownloadFile(ctx, fieldVal(st, 0))
				}
				if err != nil {
					return "", err
				}
				dest := fieldVal(st, 1)
				if err := os.WriteFile(dest, data, 0o644); err != nil {
					return "", &apierr.IOError{Err: err}
				}
				st.ReturnToActions()
				return fmt.Sprintf("saved %d bytes to %s", len(data), dest), nil
			},
		},
		{Name: "Shared", Run: driveList("sharedWithMe=true", "modifiedTime desc")},
		{Name: "Recent", Run: driveList("trashed=false", "viewedByMeTime desc")},
		{Name: "Starred", Run: driveList("starred=true and trashed=false", "")},
		{Name: "Trash", Run: driveList("trashed=true", "")},
		{Name: "Storage Info", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.drive.GetAbout(ctx)
			if err != nil {
				return "", err
			}
			st.ShowItems(nil, "")
			st.ShowDetail(detailJSON(val))
			return "storage info loaded", nil
		}},
		{Name: "Shared Drives", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.drive.ListSharedDrives(ctx, "")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, dr := range arr(val, "drives") {
				items = append(items, nav.Item{ID: str(dr, "id"), Title: str(dr, "name"), Subtitle: "shared drive"})
			}
			st.ShowItems(items, str(val, "nextPageToken"))
			return fmt.Sprintf("%d shared drives", len(items)), nil
		}},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.drive.GetFile(ctx, it.ID)
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "file loaded", nil
	},
	remove: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		if _, err := d.drive.DeleteFile(ctx, it.ID); err != nil {
			return "", err
		}
		st.RemoveSelectedItem()
		return "file deleted", nil
	},
}

// driveList builds a listing handler over a fixed query, with load-more
// wired to the same query and the page token.
func driveList(q, orderBy string) handler {
	return func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		val, err := d.drive.ListFiles(ctx, q, 20, "", orderBy)
		if err != nil {
			return "", err
		}
		items, next := driveFileItems(val)
		st.ShowItems(items, next)
		d.more = func(ctx context.Context, st *nav.State) (string, error) {
			val, err := d.drive.ListFiles(ctx, q, 20, st.NextPageToken, orderBy)
			if err != nil {
				return "", err
			}
			items, next := driveFileItems(val)
			st.AppendItems(items, next)
			return fmt.Sprintf("%d files loaded", len(st.Items)), nil
		}
		return fmt.Sprintf("%d files", len(items)), nil
	}
}

func driveFileItems(val map[string]any) ([]nav.Item, string) {
	var items []nav.Item
	for _, f := range arr(val, "files") {
		name := str(f, "name")
		if name == "" {
			name = "Unnamed"
		}
		items = append(items, nav.Item{ID: str(f, "id"), Title: name, Subtitle: str(f, "modifiedTime")})
	}
	return items, str(val, "nextPageToken")
}
