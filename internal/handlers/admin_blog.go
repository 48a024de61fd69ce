// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"kulipoly/internal/cache"
	"kulipoly/internal/models"
	"kulipoly/internal/store"
)

// BlogList returns every post, drafts included.
func (a *Admin) BlogList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.blogs.ListAll(r.Context())
	if err != nil {
		a.storeError(w, "list blog posts", err)
		return
	}
	writeOK(w, posts)
}

// BlogGet returns one post by id.
func (a *Admin) BlogGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	post, err := a.blogs.FindByID(r.Context(), id)
	if err != nil {
		a.storeError(w, "find blog post", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	writeOK(w, post)
}

// BlogCreate creates a post.
func (a *Admin) BlogCreate(w http.ResponseWriter, r *http.Request) {
	var in models.BlogInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	normalizeBlogInput(&in)
	if msg := validateBlogInput(&in); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	post, err := a.blogs.Create(r.Context(), in)
	if err != nil {
		a.storeError(w, "create blog post", err)
		return
	}
	a.inv.entity(r.Context(), cache.KindBlog, post.ID, store.ActionCreate, post.Slug)
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: post})
}

// BlogUpdate applies a partial update. Source edits leave the
// translation cache in place.
func (a *Admin) BlogUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var patch models.BlogPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	normalizeBlogPatch(&patch)

	ctx := r.Context()
	before, err := a.blogs.FindByID(ctx, id)
	if err != nil {
		a.storeError(w, "find blog post", err)
		return
	}
	if before == nil {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if msg := validateBlogPatch(&patch, before); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	post, err := a.blogs.Update(ctx, id, patch)
	if err != nil {
		a.storeError(w, "update blog post", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	a.inv.entity(ctx, cache.KindBlog, id, store.ActionUpdate, before.Slug, post.Slug)
	writeOK(w, post)
}

// BlogDelete removes a post.
func (a *Admin) BlogDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	post, err := a.blogs.FindByID(ctx, id)
	if err != nil {
		a.storeError(w, "find blog post", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}

	deleted, err := a.blogs.Delete(ctx, id)
	if err != nil {
		a.storeError(w, "delete blog post", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	a.inv.entity(ctx, cache.KindBlog, id, store.ActionDelete, post.Slug)
	writeOK(w, nil)
}

// BlogClearTranslation drops the cached translation so the next visit in
// the target language translates afresh.
func (a *Admin) BlogClearTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	cleared, err := a.blogs.ClearTranslation(ctx, id)
	if err != nil {
		a.storeError(w, "clear blog translation", err)
		return
	}
	if !cleared {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	var slug string
	if post, err := a.blogs.FindByID(ctx, id); err == nil && post != nil {
		slug = post.Slug
	}
	a.inv.entity(ctx, cache.KindBlog, id, store.ActionUntranslate, slug)
	writeOK(w, nil)
}
