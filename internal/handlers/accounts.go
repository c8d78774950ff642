package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub/api/internal/models"
	"schoolhub/api/internal/repository"
)

func (h HandlerSet) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "An error occurred while trying to fetch accounts")
		return
	}
	if len(accounts) == 0 {
		errorJSON(c, http.StatusNotFound, "There are currently no accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h HandlerSet) GetAccount(c *gin.Context) {
	const notFound = "An account with this ID doesn't exist"

	id, ok := paramID(c, "accountID")
	if !ok {
		errorJSON(c, http.StatusNotFound, notFound)
		return
	}

	account, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			errorJSON(c, http.StatusNotFound, notFound)
			return
		}
		h.fail(c, err, "An error occurred while trying to access the account")
		return
	}
	c.JSON(http.StatusOK, []models.Account{account})
}

func (h HandlerSet) DeleteAccount(c *gin.Context) {
	const notFound = "The account you are trying to delete doesn't exist"

	id, ok := paramID(c, "accountID")
	if !ok {
		errorJSON(c, http.StatusNotFound, notFound)
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			errorJSON(c, http.StatusNotFound, notFound)
			return
		}
		h.fail(c, err, "An error occurred while trying to delete the account")
		return
	}
	messageJSON(c, http.StatusOK, "The account has been deleted successfully")
}

func (h HandlerSet) SearchAccounts(c *gin.Context) {
	term := c.Query("q")

	accounts, err := h.accounts.Search(c.Request.Context(), term)
	if err != nil {
		h.fail(c, err, "An error occurred while trying to perform your search")
		return
	}
	if len(accounts) == 0 {
		errorJSON(c, http.StatusNotFound, fmt.Sprintf("We could not find any account related to %q", term))
		return
	}
	c.JSON(http.StatusOK, accounts)
}
