package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/wdylt/wdylt/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns folders + bookmarks.
// Folders are returned parents first. A <DD> following an entry becomes its
// description; PRIVATE="1" and TAGS="a,b" attributes are honored.
func ParseHTMLBookmarks(r io.Reader) ([]model.Folder, []model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	var folders []model.Folder
	var bookmarks []model.Bookmark

	// Track current folder stack for hierarchy
	var folderStack []string
	pendingFolder := -1 // index into folders, pushed on the next DL

	// What the next DD describes
	const (
		describeNone = iota
		describeFolder
		describeBookmark
	)
	describe := describeNone

	currentParent := func() *string {
		if len(folderStack) == 0 {
			return nil
		}
		id := folderStack[len(folderStack)-1]
		return &id
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := innerText(n)
				if name == "" {
					return
				}
				folder := model.NewFolder(model.NewFolderParams{
					Name:      name,
					ParentID:  currentParent(),
					IsPrivate: attr(n, "private") == "1",
				})
				if t, ok := unixAttr(n, "add_date"); ok {
					folder.CreatedAt = t
				}
				if t, ok := unixAttr(n, "last_modified"); ok {
					folder.UpdatedAt = t
				}
				folders = append(folders, folder)
				pendingFolder = len(folders) - 1
				describe = describeFolder
				return // Don't recurse into H3

			case "a":
				href := strings.TrimSpace(attr(n, "href"))
				if href == "" {
					describe = describeNone
					return
				}

				title := innerText(n)
				if title == "" {
					title = href
				}

				createdAt, ok := unixAttr(n, "add_date")
				if !ok {
					createdAt = time.Now()
				}
				updatedAt, ok := unixAttr(n, "last_modified")
				if !ok {
					updatedAt = createdAt
				}
				var visitedAt *time.Time
				if t, ok := unixAttr(n, "last_visit"); ok {
					visitedAt = &t
				}

				tags := []string{}
				if raw := attr(n, "tags"); raw != "" {
					tags = model.ParseTags(raw)
				}

				bookmarks = append(bookmarks, model.Bookmark{
					ID:        model.GenerateUUID(),
					Title:     title,
					URL:       href,
					FolderID:  currentParent(),
					IsPrivate: attr(n, "private") == "1",
					Tags:      tags,
					Icon:      attr(n, "icon"),
					CreatedAt: createdAt,
					UpdatedAt: updatedAt,
					VisitedAt: visitedAt,
				})
				describe = describeBookmark
				return // Don't recurse into A

			case "dd":
				text := leadingText(n)
				switch describe {
				case describeBookmark:
					bookmarks[len(bookmarks)-1].Description = text
				case describeFolder:
					folders[len(folders)-1].Description = text
				}
				describe = describeNone
				// A folder's DL may be nested inside its DD

			case "dl":
				describe = describeNone
				pushedFolder := false
				if pendingFolder >= 0 {
					folderStack = append(folderStack, folders[pendingFolder].ID)
					pendingFolder = -1
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return folders, bookmarks, nil
}

// unixAttr reads a unix seconds attribute such as ADD_DATE.
func unixAttr(n *html.Node, key string) (time.Time, bool) {
	ts, err := strconv.ParseInt(attr(n, key), 10, 64)
	if err != nil || ts <= 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

// innerText concatenates every text node below n.
func innerText(n *html.Node) string {
	var b strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// leadingText is the text of a <DD> up to its first child element, so a
// folder's nested <DL> is not folded into the description.
func leadingText(n *html.Node) string {
	var b strings.Builder
	for c := range n.ChildNodes() {
		if c.Type == html.ElementNode {
			break
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// attr looks up an attribute by case-insensitive name.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
