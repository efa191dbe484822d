package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"lostlink/internal/auth"
	"lostlink/internal/media"
	"lostlink/internal/models"
	"lostlink/internal/services"
	"lostlink/internal/store"
	"lostlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	store    store.Store
	media    media.Store
	cascade  *services.Cascade
	counters *services.Counters
}

func NewPostHandler(s store.Store, m media.Store, cascade *services.Cascade, counters *services.Counters) *PostHandler {
	return &PostHandler{store: s, media: m, cascade: cascade, counters: counters}
}

// uploadAll pushes every file to the media store and returns the hosted
// images in upload order.
func (h *PostHandler) uploadAll(c *gin.Context, files []*multipart.FileHeader, folder string) ([]models.Image, bool) {
	images := make([]models.Image, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error reading uploaded file"})
			return nil, false
		}
		result, err := h.media.Upload(c.Request.Context(), file, header, folder)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading files"})
			return nil, false
		}
		images = append(images, models.Image{URL: result.URL, PublicID: result.PublicID})
	}
	return images, true
}

func (h *PostHandler) Create(c *gin.Context) {
	user, _ := currentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) > models.MaxPostImages {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A maximum of 3 images is allowed"})
		return
	}

	title := cleanText(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	images, ok := h.uploadAll(c, files, "posts")
	if !ok {
		return
	}

	post := models.Post{
		UserID:         user.ID,
		StudentName:    user.StudentName,
		UserProfilePic: user.ProfilePic,
		Title:          title,
		Description:    cleanText(c.PostForm("description")),
		Category:       c.PostForm("category"),
		ItemType:       c.PostForm("itemType"),
		Status:         models.StatusUnresolved,
		CollegeYear:    c.PostForm("college_year"),
		Department:     c.PostForm("department"),
		Images:         images,
		Tags:           utils.ParseTags(c.PostForm("tags")),
	}

	if err := h.store.CreatePost(c.Request.Context(), &post); err != nil {
		fail(c, err, "")
		return
	}
	if err := h.counters.PostCreated(c.Request.Context(), user.ID); err != nil {
		fail(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List returns all posts newest first. Anonymous and non-admin callers see
// unresolved posts plus their own regardless of status; admins see
// everything.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.store.ListPosts(c.Request.Context())
	if err != nil {
		fail(c, err, "")
		return
	}

	user, authed := currentUser(c)
	if authed && user.IsAdmin {
		c.JSON(http.StatusOK, posts)
		return
	}

	visible := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Status == models.StatusUnresolved || (authed && p.UserID == user.ID) {
			visible = append(visible, p)
		}
	}
	c.JSON(http.StatusOK, visible)
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("userId"))
	posts, err := h.store.ListPostsByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get fetches a single post and increments its view counter on every read.
func (h *PostHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	post, err := h.store.PostByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Post not found")
		return
	}

	if err := h.store.IncrementPostViews(c.Request.Context(), post.ID); err != nil {
		fail(c, err, "")
		return
	}
	post.Views++

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	user, _ := currentUser(c)
	id := utils.StringToUint(c.Param("id"))

	post, err := h.store.PostByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Post not found")
		return
	}

	if err := auth.RequireOwner(user, post.UserID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only update your own posts"})
		return
	}

	// Merge kept existing images with new uploads. Images dropped from the
	// existingImages list are deleted from the media store.
	updatedImages := post.Images
	if raw, provided := c.GetPostForm("existingImages"); provided {
		var kept []models.Image
		if err := json.Unmarshal([]byte(raw), &kept); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid existingImages payload"})
			return
		}
		keptIDs := make(map[string]bool, len(kept))
		for _, img := range kept {
			keptIDs[img.PublicID] = true
		}
		for _, img := range post.Images {
			if !keptIDs[img.PublicID] {
				h.cascade.DeleteMedia(c.Request.Context(), img.PublicID)
			}
		}
		updatedImages = kept
	}

	if form, err := c.MultipartForm(); err == nil {
		files := form.File["images"]
		if len(updatedImages)+len(files) > models.MaxPostImages {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A maximum of 3 images is allowed"})
			return
		}
		uploaded, ok := h.uploadAll(c, files, "posts")
		if !ok {
			return
		}
		updatedImages = append(updatedImages, uploaded...)
	}
	post.Images = updatedImages

	if title, provided := c.GetPostForm("title"); provided {
		if title = cleanText(title); title != "" {
			post.Title = title
		}
	}
	if description, provided := c.GetPostForm("description"); provided {
		post.Description = cleanText(description)
	}
	if category, provided := c.GetPostForm("category"); provided {
		post.Category = category
	}
	if itemType, provided := c.GetPostForm("itemType"); provided {
		post.ItemType = itemType
	}
	if collegeYear, provided := c.GetPostForm("college_year"); provided {
		post.CollegeYear = collegeYear
	}
	if department, provided := c.GetPostForm("department"); provided {
		post.Department = department
	}
	if tags, provided := c.GetPostForm("tags"); provided {
		post.Tags = utils.ParseTags(tags)
	}

	if status, provided := c.GetPostForm("status"); provided && status != post.Status {
		// The counter service owns the set of valid statuses; an unknown
		// value comes back as ErrInvalid and maps to a 400.
		if err := h.counters.PostStatusChanged(c.Request.Context(), post.UserID, post.Status, status); err != nil {
			fail(c, err, "")
			return
		}
		post.Status = status
	}

	if err := h.store.SavePost(c.Request.Context(), post); err != nil {
		fail(c, err, "Post not found")
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user, _ := currentUser(c)
	id := utils.StringToUint(c.Param("id"))

	post, err := h.store.PostByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Post not found")
		return
	}

	if err := auth.RequireOwnerOrAdmin(user, post.UserID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own posts"})
		return
	}

	if err := h.cascade.DeletePost(c.Request.Context(), post); err != nil {
		fail(c, err, "Post not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
