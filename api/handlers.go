package api

import (
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
	"kanban-api/store"
)

const requestBodyMaxSize = 1 << 20 // 1 MiB

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, st Store, auth Authenticator, logger *log.Logger) {
	e.GET("/healthz", healthz())

	g := e.Group("/api", requireAuth(auth))

	g.GET("/board", getBoard(st))
	g.PATCH("/board", patchBoard(st))

	g.GET("/tasks", getTasks(st, logger))
	g.POST("/tasks", postTask(st))
	g.PATCH("/tasks/:id", patchTask(st))
	g.DELETE("/tasks/:id", deleteTask(st))
	g.POST("/tasks/:id/move", moveTask(st))
	g.GET("/tasks/:id/analytics", getTaskAnalytics(st))

	g.POST("/tags", postTag(st))
	g.DELETE("/tags/:id", deleteTag(st))
	g.POST("/users", postUser(st))

	g.GET("/activities", getActivities(st))
	g.GET("/analytics", getAnalytics(st))

	g.PUT("/search", putSearch(st))
	g.PUT("/filters", putFilters(st))
	g.DELETE("/filters", deleteFilters(st))

	g.GET("/export", getExport(st))
	g.POST("/import", postImport(st))
	g.POST("/reset", postReset(st))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

// requireAuth rejects requests whose bearer token does not validate. The
// extracted user id is kept on the echo context for handlers that care.
func requireAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.String(http.StatusUnauthorized, err.Error())
			}
			c.Set("userID", userID)
			return next(c)
		}
	}
}

func decodeBody(c echo.Context, out any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func getBoard(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, st.State())
	}
}

func patchBoard(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch domain.BoardConfigPatch
		if err := decodeBody(c, &patch); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		st.UpdateBoardConfig(c.Request().Context(), patch)
		return c.NoContent(http.StatusNoContent)
	}
}

type tasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

func getTasks(st Store, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		var tasks []domain.Task
		fetchStart := time.Now()
		if raw := c.QueryParam("status"); raw != "" {
			status := domain.Status(raw)
			if !status.Valid() {
				metrics.SetErrorStage("invalid_status")
				err = c.String(http.StatusBadRequest, "invalid status")
				return err
			}
			tasks = st.ColumnTasks(status)
		} else {
			tasks = st.VisibleTasks()
		}
		metrics.ObserveFetch(time.Since(fetchStart))
		metrics.SetTasksReturned(len(tasks))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, tasksResponse{Tasks: tasks})
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

type idResponse struct {
	ID string `json:"id"`
}

func postTask(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var draft domain.TaskDraft
		if err := decodeBody(c, &draft); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if !draft.Status.Valid() {
			return c.String(http.StatusBadRequest, "invalid status")
		}
		id := st.AddTask(c.Request().Context(), draft)
		return c.JSON(http.StatusCreated, idResponse{ID: id})
	}
}

func patchTask(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch domain.TaskPatch
		if err := decodeBody(c, &patch); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if patch.Status != nil && !patch.Status.Valid() {
			return c.String(http.StatusBadRequest, "invalid status")
		}
		st.UpdateTask(c.Request().Context(), c.Param("id"), patch)
		return c.NoContent(http.StatusNoContent)
	}
}

func deleteTask(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		st.DeleteTask(c.Request().Context(), c.Param("id"))
		return c.NoContent(http.StatusNoContent)
	}
}

type moveRequest struct {
	Status domain.Status `json:"status"`
}

func moveTask(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req moveRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if !req.Status.Valid() {
			return c.String(http.StatusBadRequest, "invalid status")
		}
		st.MoveTask(c.Request().Context(), c.Param("id"), req.Status)
		return c.NoContent(http.StatusNoContent)
	}
}

func getTaskAnalytics(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		state := st.State()
		idx := state.TaskIndex(id)
		if idx < 0 {
			return c.String(http.StatusNotFound, "task not found")
		}
		return c.JSON(http.StatusOK, domain.TimeInStatus(state.Tasks[idx], time.Now()))
	}
}

type tagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func postTag(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req tagRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		id := st.AddTag(c.Request().Context(), req.Name, req.Color)
		return c.JSON(http.StatusCreated, idResponse{ID: id})
	}
}

func deleteTag(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		st.DeleteTag(c.Request().Context(), c.Param("id"))
		return c.NoContent(http.StatusNoContent)
	}
}

type userRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func postUser(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req userRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		id := st.AddUser(c.Request().Context(), req.Name, req.Avatar)
		return c.JSON(http.StatusCreated, idResponse{ID: id})
	}
}

func getActivities(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, st.State().Activities)
	}
}

// getAnalytics summarizes the whole board. Search and filter state only
// narrow the task list views, never the analytics.
func getAnalytics(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, domain.Summarize(st.State().Tasks))
	}
}

type searchRequest struct {
	Term string `json:"term"`
}

func putSearch(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req searchRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		st.SetSearchTerm(c.Request().Context(), req.Term)
		return c.NoContent(http.StatusNoContent)
	}
}

func putFilters(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch domain.FilterPatch
		if err := decodeBody(c, &patch); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		st.SetFilters(c.Request().Context(), patch)
		return c.NoContent(http.StatusNoContent)
	}
}

func deleteFilters(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		st.ClearFilters(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}
}

func getExport(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := st.Export(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			`attachment; filename="`+store.ExportFileName+`"`)
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
	}
}

func postImport(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := io.ReadAll(io.LimitReader(c.Request().Body, requestBodyMaxSize))
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if err := st.Import(c.Request().Context(), raw); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func postReset(st Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := st.Reset(c.Request().Context()); err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.NoContent(http.StatusNoContent)
	}
}
