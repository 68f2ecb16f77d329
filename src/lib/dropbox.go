package lib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/sharing"
	"github.com/tidwall/gjson"
)

const dropboxTokenURL = "https://api.dropboxapi.com/oauth2/token"

type FolderLinks struct {
	RawPhotosLink  string `json:"rawPhotosLink"`
	FinalEditsLink string `json:"finalEditsLink"`
}

func dropboxConfig() dropbox.Config {
	return dropbox.Config{
		Token: os.Getenv("DROPBOX_ACCESS_TOKEN"),
	}
}

// RefreshDropboxToken exchanges the configured refresh token for a new
// access token and installs it for subsequent clients.
func RefreshDropboxToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", os.Getenv("DROPBOX_REFRESH_TOKEN"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dropboxTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(os.Getenv("DROPBOX_CLIENT_ID"), os.Getenv("DROPBOX_CLIENT_SECRET"))

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to refresh Dropbox token: %s", string(body))
	}
	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		return errors.New("no access token in refresh response")
	}
	os.Setenv("DROPBOX_ACCESS_TOKEN", token)
	return nil
}

// CreateProjectFolders provisions /Projects/<street - client> with the two
// media subfolders and returns their shared links. Folder names strip
// characters outside letters, digits, space and hyphen, with whitespace
// collapsed. Existing folders are tolerated. An expired access token is
// refreshed once and the whole sequence retried.
func CreateProjectFolders(ctx context.Context, street, agentName string) (FolderLinks, error) {
	links, err := createProjectFolders(street, agentName)
	if err != nil && isAuthError(err) {
		log.Println("Dropbox token is expired or invalid, attempting to refresh...")
		if rerr := RefreshDropboxToken(ctx); rerr != nil {
			return FolderLinks{}, rerr
		}
		links, err = createProjectFolders(street, agentName)
	}
	return links, err
}

func createProjectFolders(street, agentName string) (FolderLinks, error) {
	folderName := SanitizeFolderName(street + " - " + agentName)
	mainFolderPath := "/Projects/" + folderName
	rawPhotosPath := mainFolderPath + "/Raw Brackets"
	finalEditsPath := mainFolderPath + "/Edited Media"

	cfg := dropboxConfig()
	fc := files.New(cfg)
	for _, path := range []string{mainFolderPath, rawPhotosPath, finalEditsPath} {
		if err := createFolderIfNotExists(fc, path); err != nil {
			return FolderLinks{}, err
		}
	}

	sc := sharing.New(cfg)
	rawLink, err := sharedLink(sc, rawPhotosPath)
	if err != nil {
		return FolderLinks{}, err
	}
	editsLink, err := sharedLink(sc, finalEditsPath)
	if err != nil {
		return FolderLinks{}, err
	}
	return FolderLinks{RawPhotosLink: rawLink, FinalEditsLink: editsLink}, nil
}

func createFolderIfNotExists(fc files.Client, path string) error {
	_, err := fc.CreateFolderV2(files.NewCreateFolderArg(path))
	if err != nil {
		if strings.Contains(err.Error(), "conflict") {
			log.Printf("Folder already exists: %s\n", path)
			return nil
		}
		return err
	}
	log.Printf("Created folder: %s\n", path)
	return nil
}

func sharedLink(sc sharing.Client, path string) (string, error) {
	res, err := sc.CreateSharedLinkWithSettings(sharing.NewCreateSharedLinkWithSettingsArg(path))
	if err != nil {
		// The link may already exist from an earlier run; reuse it.
		if strings.Contains(err.Error(), "shared_link_already_exists") {
			existing, lerr := sc.ListSharedLinks(&sharing.ListSharedLinksArg{Path: path})
			if lerr == nil && len(existing.Links) > 0 {
				if folder, ok := existing.Links[0].(*sharing.FolderLinkMetadata); ok {
					return folder.Url, nil
				}
			}
		}
		return "", err
	}
	if folder, ok := res.(*sharing.FolderLinkMetadata); ok {
		return folder.Url, nil
	}
	return "", errors.New("unexpected shared link metadata type")
}

var (
	folderNameStrip    = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	folderNameCollapse = regexp.MustCompile(`\s+`)
)

// SanitizeFolderName keeps letters, digits, spaces and hyphens, collapses
// runs of whitespace and trims the ends.
func SanitizeFolderName(name string) string {
	name = folderNameStrip.ReplaceAllString(name, "")
	name = folderNameCollapse.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

func isAuthError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "expired_access_token") ||
		strings.Contains(msg, "invalid_access_token") ||
		strings.Contains(msg, "401")
}
