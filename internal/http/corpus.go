package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sbreader/internal/entities"
)

// CorpusController serves the read-only scripture endpoints.
type CorpusController struct {
	corpus   CorpusStore
	chapters ChapterReader
}

func NewCorpusController(corpus CorpusStore, chapters ChapterReader) *CorpusController {
	return &CorpusController{corpus: corpus, chapters: chapters}
}

// VerseResponse is a stored verse with its multi-line fields split back
// into lines.
type VerseResponse struct {
	ID          uint     `json:"id"`
	ChapterID   uint     `json:"chapterId"`
	VerseNumber int      `json:"verseNumber"`
	Text        []string `json:"text"`
	Synonyms    string   `json:"synonyms"`
	Translation string   `json:"translation"`
	Purport     []string `json:"purport"`
}

func newVerseResponse(v entities.Verse) VerseResponse {
	return VerseResponse{
		ID:          v.ID,
		ChapterID:   v.ChapterID,
		VerseNumber: v.VerseNumber,
		Text:        v.TextLines(),
		Synonyms:    v.Synonyms,
		Translation: v.Translation,
		Purport:     v.PurportLines(),
	}
}

// ListCantos handles GET /api/cantos
func (cc *CorpusController) ListCantos(c *gin.Context) {
	cantos, err := cc.corpus.ListCantos(c.Request.Context())
	if err != nil {
		respondInternalError(c, "list cantos", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cantos": cantos})
}

// GetCanto handles GET /api/cantos/:id
// A missing canto still answers 200 with an empty title.
func (cc *CorpusController) GetCanto(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	canto, found, err := cc.corpus.GetCanto(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, "get canto", err)
		return
	}

	title := ""
	if found {
		title = canto.Title
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    id,
		"found": found,
		"title": title,
	})
}

// ListChapters handles GET /api/cantos/:id/chapters
func (cc *CorpusController) ListChapters(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	chapters, err := cc.chapters.ListChapters(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, "list chapters", err)
		return
	}

	response := gin.H{"chapters": chapters}
	if len(chapters) == 0 {
		response["message"] = "No chapters found"
	}
	c.JSON(http.StatusOK, response)
}

// GetChapter handles GET /api/chapters/:id
func (cc *CorpusController) GetChapter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	chapter, found, err := cc.chapters.Chapter(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, "get chapter", err)
		return
	}
	if !found {
		respondNotFound(c, "Chapter")
		return
	}
	c.JSON(http.StatusOK, chapter)
}

// ListVerses handles GET /api/chapters/:id/verses
func (cc *CorpusController) ListVerses(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	verses, err := cc.corpus.ListVerses(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, "list verses", err)
		return
	}

	items := make([]VerseResponse, 0, len(verses))
	for _, v := range verses {
		items = append(items, newVerseResponse(v))
	}

	response := gin.H{"verses": items}
	if len(items) == 0 {
		response["message"] = "No verses found"
	}
	c.JSON(http.StatusOK, response)
}

// GetVerse handles GET /api/chapters/:id/verses/:number
func (cc *CorpusController) GetVerse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	number, ok := parseNumberParam(c, "number")
	if !ok {
		return
	}

	verse, found, err := cc.corpus.GetVerse(c.Request.Context(), id, number)
	if err != nil {
		respondInternalError(c, "get verse", err)
		return
	}
	if !found {
		respondNotFound(c, "Verse")
		return
	}
	c.JSON(http.StatusOK, newVerseResponse(*verse))
}

// Neighbor handles GET /api/chapters/:id/neighbor?direction=next|previous
// The first and last chapters answer 200 with found=false.
func (cc *CorpusController) Neighbor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	direction, ok := parseDirection(c, c.DefaultQuery("direction", string(entities.Next)))
	if !ok {
		return
	}

	chapter, found, err := cc.corpus.NeighborChapter(c.Request.Context(), id, direction)
	if err != nil {
		respondInternalError(c, "neighbor chapter", err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"found":   true,
		"chapter": chapter,
	})
}
