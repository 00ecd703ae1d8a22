package backup

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveStore uploads into a Google Drive folder with a service account.
type DriveStore struct {
	svc *drive.Service
}

func NewDriveStore(ctx context.Context, credentialsFile string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}
	return &DriveStore{svc: svc}, nil
}

func quote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func (s *DriveStore) DeleteNamed(ctx context.Context, folder, name string) error {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", quote(name), quote(folder))
	res, err := s.svc.Files.List().
		Q(q).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("list %s: %w", name, err)
	}
	for _, f := range res.Files {
		if err := s.svc.Files.Delete(f.Id).SupportsAllDrives(true).Context(ctx).Do(); err != nil {
			return fmt.Errorf("delete %s (%s): %w", name, f.Id, err)
		}
	}
	return nil
}

func (s *DriveStore) Upload(ctx context.Context, folder, name string, r io.Reader) error {
	meta := &drive.File{Name: name, Parents: []string{folder}}
	if _, err := s.svc.Files.Create(meta).
		Media(r).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}
