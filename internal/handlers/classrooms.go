package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub/api/internal/models"
	"schoolhub/api/internal/repository"
)

func (h HandlerSet) ListClassrooms(c *gin.Context) {
	classrooms, err := h.classrooms.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "An error occurred while trying to fetch classrooms")
		return
	}
	if len(classrooms) == 0 {
		errorJSON(c, http.StatusNotFound, "There are currently no classrooms")
		return
	}
	c.JSON(http.StatusOK, classrooms)
}

func (h HandlerSet) GetClassroom(c *gin.Context) {
	const notFound = "A classroom with this ID doesn't exist"

	id, ok := paramID(c, "classroomID")
	if !ok {
		errorJSON(c, http.StatusNotFound, notFound)
		return
	}

	classroom, err := h.classrooms.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrClassroomNotFound) {
			errorJSON(c, http.StatusNotFound, notFound)
			return
		}
		h.fail(c, err, "An error occurred while trying to access the classroom")
		return
	}
	c.JSON(http.StatusOK, []models.Classroom{classroom})
}

func (h HandlerSet) DeleteClassroom(c *gin.Context) {
	const notFound = "The classroom you are trying to delete doesn't exist"

	id, ok := paramID(c, "classroomID")
	if !ok {
		errorJSON(c, http.StatusNotFound, notFound)
		return
	}

	if err := h.classrooms.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrClassroomNotFound) {
			errorJSON(c, http.StatusNotFound, notFound)
			return
		}
		h.fail(c, err, "An error occurred while trying to delete the classroom")
		return
	}
	messageJSON(c, http.StatusOK, "The classroom has been deleted successfully")
}

func (h HandlerSet) SearchClassrooms(c *gin.Context) {
	term := c.Query("q")

	classrooms, err := h.classrooms.Search(c.Request.Context(), term)
	if err != nil {
		h.fail(c, err, "An error occurred while trying to perform your search")
		return
	}
	if len(classrooms) == 0 {
		errorJSON(c, http.StatusNotFound, fmt.Sprintf("We could not find any classroom related to %q", term))
		return
	}
	c.JSON(http.StatusOK, classrooms)
}
