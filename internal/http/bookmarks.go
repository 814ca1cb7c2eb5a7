package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sbreader/internal/entities"
	"github.com/mrlokans/sbreader/internal/exporters"
)

type BookmarksController struct {
	bookmarks BookmarkStore
	corpus    CorpusStore
}

func NewBookmarksController(bookmarks BookmarkStore, corpus CorpusStore) *BookmarksController {
	return &BookmarksController{bookmarks: bookmarks, corpus: corpus}
}

// ToggleRequest names the verse being read. The snapshot stored with the
// bookmark is taken from the corpus, not from the client.
type ToggleRequest struct {
	ChapterID   uint `json:"chapterId" binding:"required"`
	VerseNumber int  `json:"verseNumber" binding:"required"`
}

// List handles GET /api/bookmarks
func (bc *BookmarksController) List(c *gin.Context) {
	bookmarks, err := bc.bookmarks.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, "list bookmarks", err)
		return
	}

	response := gin.H{"bookmarks": bookmarks}
	if len(bookmarks) == 0 {
		response["message"] = "No bookmarks yet"
	}
	c.JSON(http.StatusOK, response)
}

// Status handles GET /api/bookmarks/status?verse_id=&chapter_id=&canto_id=&chapter_number=
func (bc *BookmarksController) Status(c *gin.Context) {
	key, ok := bindBookmarkKey(c)
	if !ok {
		return
	}

	bookmarked, err := bc.bookmarks.IsBookmarked(c.Request.Context(), key)
	if err != nil {
		respondInternalError(c, "bookmark status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

// Toggle handles POST /api/bookmarks/toggle
func (bc *BookmarksController) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ChapterID == 0 || req.VerseNumber <= 0 {
		respondBadRequest(c, "chapterId and verseNumber are required")
		return
	}
	ctx := c.Request.Context()

	chapter, found, err := bc.corpus.GetChapter(ctx, req.ChapterID)
	if err != nil {
		respondInternalError(c, "toggle bookmark", err)
		return
	}
	if !found {
		respondNotFound(c, "Chapter")
		return
	}
	verse, found, err := bc.corpus.GetVerse(ctx, req.ChapterID, req.VerseNumber)
	if err != nil {
		respondInternalError(c, "toggle bookmark", err)
		return
	}
	if !found {
		respondNotFound(c, "Verse")
		return
	}

	snapshot := entities.NewBookmark(*verse, chapter.CantoID, chapter.ChapterNumber)
	bookmarked, err := bc.bookmarks.Toggle(ctx, snapshot)
	if err != nil {
		respondInternalError(c, "toggle bookmark", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookmarked": bookmarked,
		"key":        snapshot.Key(),
	})
}

// Remove handles DELETE /api/bookmarks/:id
func (bc *BookmarksController) Remove(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.bookmarks.Remove(c.Request.Context(), id); err != nil {
		respondInternalError(c, "remove bookmark", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveByVerse handles DELETE /api/bookmarks?verse_id=&chapter_id=&canto_id=&chapter_number=
func (bc *BookmarksController) RemoveByVerse(c *gin.Context) {
	key, ok := bindBookmarkKey(c)
	if !ok {
		return
	}

	removed, err := bc.bookmarks.RemoveByVerse(c.Request.Context(), key)
	if err != nil {
		respondInternalError(c, "remove bookmark by verse", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Export handles GET /api/bookmarks/export
func (bc *BookmarksController) Export(c *gin.Context) {
	bookmarks, err := bc.bookmarks.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, "export bookmarks", err)
		return
	}

	var buf bytes.Buffer
	if _, err := exporters.NewBookmarksMarkdownExporter(&buf).Export(bookmarks); err != nil {
		respondInternalError(c, "export bookmarks", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bookmarks.md"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", buf.Bytes())
}

func bindBookmarkKey(c *gin.Context) (entities.BookmarkKey, bool) {
	var key entities.BookmarkKey
	if err := c.ShouldBindQuery(&key); err != nil || key.VerseID == 0 || key.ChapterID == 0 || key.CantoID == 0 {
		respondBadRequest(c, "verse_id, chapter_id, canto_id and chapter_number are required")
		return key, false
	}
	return key, true
}
