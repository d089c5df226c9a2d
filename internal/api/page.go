package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfinder/internal/metrics"
	"github.com/pageza/mealfinder/internal/middleware"
	"github.com/pageza/mealfinder/internal/page"
	"github.com/pageza/mealfinder/internal/render"
	"github.com/pageza/mealfinder/internal/service"
	"github.com/pageza/mealfinder/internal/session"
)

// PageHandler serves the browser page. Each session owns one page.Page that
// survives between requests in the session store.
type PageHandler struct {
	finder *service.FinderService
	store  session.Store
	guard  session.Guard
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(finder *service.FinderService, store session.Store, guard session.Guard) *PageHandler {
	return &PageHandler{
		finder: finder,
		store:  store,
		guard:  guard,
	}
}

// RegisterRoutes binds the page controls
func (h *PageHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Index)
	router.POST("/search", h.Search)
	router.POST("/random", h.Random)
	router.GET("/meals/:id", h.ShowMeal)
}

// Index renders the session's page, filling a new session with the meals of
// a random region. Rendering never writes the page back; only the pending
// flash is consumed.
func (h *PageHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	p, err := h.store.Load(ctx, sid)
	if errors.Is(err, session.ErrNotFound) {
		p, err = h.initialize(c, sid)
	}
	if err != nil {
		h.fail(c, "initialize page", err)
		return
	}

	h.render(c, sid, p)
}

// initialize builds and stores the first page of a session. When another
// request holds the session an empty page is shown and nothing is stored.
func (h *PageHandler) initialize(c *gin.Context, sid string) (*page.Page, error) {
	var p *page.Page
	acquired, err := h.locked(c, sid, func() error {
		var err error
		p, err = h.store.Load(c.Request.Context(), sid)
		if !errors.Is(err, session.ErrNotFound) {
			return err
		}
		p = page.New()
		return h.commit(c, sid, p, h.finder.Init(c.Request.Context(), p))
	})
	if !acquired && err == nil {
		return page.New(), nil
	}
	return p, err
}

// Search runs the submitted search. Only one request per session changes the
// page at a time; a submit that arrives while another is in flight is
// ignored and leaves an alert for the next render.
func (h *PageHandler) Search(c *gin.Context) {
	sid := middleware.SessionID(c)
	term := c.PostForm(page.SearchID)

	acquired, err := h.locked(c, sid, func() error {
		p, err := h.load(c, sid)
		if err != nil {
			return err
		}
		p.SearchBox = term

		if err := h.finder.Search(c.Request.Context(), p, term); err != nil {
			log.Printf("Search %q failed: %v", term, err)
		}
		return h.commit(c, sid, p, nil)
	})
	if !acquired && err == nil {
		metrics.Searches.WithLabelValues(metrics.SearchPending).Inc()
	}
	h.redirect(c, sid, acquired, err, "/")
}

// Random clears the results and shows a random meal
func (h *PageHandler) Random(c *gin.Context) {
	sid := middleware.SessionID(c)

	acquired, err := h.locked(c, sid, func() error {
		p, err := h.load(c, sid)
		if err != nil {
			return err
		}
		return h.commit(c, sid, p, h.finder.ShowRandomMeal(c.Request.Context(), p))
	})
	h.redirect(c, sid, acquired, err, "/#"+page.SingleMealID)
}

// ShowMeal renders the detail of the tile the user picked
func (h *PageHandler) ShowMeal(c *gin.Context) {
	sid := middleware.SessionID(c)

	var p *page.Page
	acquired, err := h.locked(c, sid, func() error {
		var err error
		if p, err = h.load(c, sid); err != nil {
			return err
		}
		return h.commit(c, sid, p, h.finder.ShowMeal(c.Request.Context(), p, c.Param("id")))
	})
	if err != nil {
		h.fail(c, "fetch meal", err)
		return
	}
	if !acquired {
		h.redirect(c, sid, false, nil, "/")
		return
	}
	h.render(c, sid, p)
}

// locked runs fn while holding the session's page lock. It reports false
// without running fn when another request holds the lock.
func (h *PageHandler) locked(c *gin.Context, sid string, fn func() error) (bool, error) {
	ctx := c.Request.Context()
	acquired, err := h.guard.Acquire(ctx, sid)
	if err != nil {
		return false, fmt.Errorf("acquire session lock: %w", err)
	}
	if !acquired {
		return false, nil
	}
	defer func() {
		// the request context may already be cancelled
		if err := h.guard.Release(context.WithoutCancel(ctx), sid); err != nil {
			log.Printf("Failed to release session lock for %s: %v", sid, err)
		}
	}()
	return true, fn()
}

// load reads the session's page, starting a blank one for a new session
func (h *PageHandler) load(c *gin.Context, sid string) (*page.Page, error) {
	p, err := h.store.Load(c.Request.Context(), sid)
	if errors.Is(err, session.ErrNotFound) {
		return page.New(), nil
	}
	return p, err
}

// commit stores p with its one-shot fields moved to the flash. It is also
// called after a failed fetch so the state the failure left on the page
// (cleared list, error heading) is kept; cause is returned unless storing
// fails.
func (h *PageHandler) commit(c *gin.Context, sid string, p *page.Page, cause error) error {
	ctx := c.Request.Context()
	flash := p.TakeFlash()
	if err := h.store.Save(ctx, sid, p); err != nil {
		return errors.Join(cause, fmt.Errorf("save session: %w", err))
	}
	if err := h.store.PutFlash(ctx, sid, flash); err != nil {
		return errors.Join(cause, fmt.Errorf("save flash: %w", err))
	}
	return cause
}

// render writes the page together with the pending flash
func (h *PageHandler) render(c *gin.Context, sid string, p *page.Page) {
	flash, err := h.store.TakeFlash(c.Request.Context(), sid)
	if err != nil {
		log.Printf("Failed to take flash of session %s: %v", sid, err)
	}
	p.ApplyFlash(flash)

	var buf bytes.Buffer
	if err := render.Page(&buf, p); err != nil {
		h.fail(c, "render page", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// redirect finishes a page-changing POST. A request turned away by the
// session lock leaves the busy alert for the next render.
func (h *PageHandler) redirect(c *gin.Context, sid string, acquired bool, err error, location string) {
	if err != nil {
		h.fail(c, "update page", err)
		return
	}
	if !acquired {
		if err := h.store.PutFlash(c.Request.Context(), sid, page.Flash{Alert: session.ErrBusy.Error()}); err != nil {
			h.fail(c, "save flash", err)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, location)
}

// fail answers with a plain error page. Failures here are not turned into
// page alerts.
func (h *PageHandler) fail(c *gin.Context, action string, err error) {
	log.Printf("Failed to %s: %v", action, err)
	c.String(StatusFor(err), "Opps! There has been an error: %v", err)
}
