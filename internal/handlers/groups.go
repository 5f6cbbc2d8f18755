package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/splitkaro/backend/internal/middleware"
	"github.com/splitkaro/backend/internal/service"
)

type GroupsHandler struct {
	groups *service.GroupService
}

func NewGroupsHandler(groups *service.GroupService) *GroupsHandler {
	return &GroupsHandler{groups: groups}
}

type phoneMemberRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	DisplayName string `json:"displayName"`
}

func toPhoneMembers(reqs []phoneMemberRequest) []service.PhoneMember {
	members := make([]service.PhoneMember, 0, len(reqs))
	for _, r := range reqs {
		members = append(members, service.PhoneMember{
			PhoneNumber: strings.TrimSpace(r.PhoneNumber),
			DisplayName: strings.TrimSpace(r.DisplayName),
		})
	}
	return members
}

type createGroupRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Members     []phoneMemberRequest `json:"members"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}

	group, err := h.groups.CreateGroup(c.Context(), middleware.UserID(c),
		strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), toPhoneMembers(req.Members))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusCreated, group)
}

func (h *GroupsHandler) List(c *fiber.Ctx) error {
	groups, err := h.groups.ListGroups(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, groups)
}

func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	group, err := h.groups.GetGroup(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, group)
}

type updateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *GroupsHandler) Update(c *fiber.Ctx) error {
	var req updateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}

	group, err := h.groups.UpdateGroup(c.Context(), middleware.UserID(c), c.Params("id"),
		strings.TrimSpace(req.Name), strings.TrimSpace(req.Description))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, group)
}

func (h *GroupsHandler) Delete(c *fiber.Ctx) error {
	if err := h.groups.DeleteGroup(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

type addMembersRequest struct {
	Members []phoneMemberRequest `json:"members"`
}

func (h *GroupsHandler) AddMembers(c *fiber.Ctx) error {
	var req addMembersRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Members) == 0 {
		return failure(c, fiber.StatusBadRequest, "members are required")
	}

	group, err := h.groups.AddMembers(c.Context(), middleware.UserID(c), c.Params("id"), toPhoneMembers(req.Members))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, group)
}

type inviteRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	DisplayName string `json:"displayName"`
}

func (h *GroupsHandler) Invite(c *fiber.Ctx) error {
	var req inviteRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := h.groups.InviteMember(c.Context(), middleware.UserID(c), c.Params("id"),
		strings.TrimSpace(req.PhoneNumber), strings.TrimSpace(req.DisplayName))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"outcome": outcome})
}
