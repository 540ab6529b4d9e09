package telegram

import (
	"strconv"
	"strings"

	"taskbot/internal/domain/entity"
)

// callbackKind закрытый набор видов callback-запросов. Данные
// декодируются один раз на границе, дальше диспетчеризация идёт по
// типизированному значению.
type callbackKind int

const (
	cbUnknown callbackKind = iota

	cbEditProject
	cbDeleteProject
	cbConfirmDeleteProject
	cbCancelDeleteProject
	cbViewProject
	cbBackToProject
	cbEditProjectName
	cbEditProjectDesc
	cbViewTasks

	cbViewTeam
	cbApproveJoin
	cbRejectJoin
	cbAddMember
	cbAddMemberConfirm
	cbEditProfile
	cbBackToMenu

	cbCreateTask
	cbCancelTaskCreation
	cbTaskStatus
	cbEditTask
	cbDeleteTask
	cbBackToTasks
)

// callbackAction декодированный callback-запрос
type callbackAction struct {
	kind      callbackKind
	projectID string
	taskID    string
	userID    int64
	status    entity.TaskStatus
}

// decodeCallback разбирает callback-данные вида "prefix:arg:arg".
// Неизвестный префикс и некорректные аргументы дают cbUnknown.
func decodeCallback(data string) callbackAction {
	parts := strings.Split(data, ":")

	switch parts[0] {
	case "edit_project":
		return projectAction(cbEditProject, parts)
	case "delete_project":
		return projectAction(cbDeleteProject, parts)
	case "confirm_delete_project":
		return projectAction(cbConfirmDeleteProject, parts)
	case "cancel_delete_project":
		return projectAction(cbCancelDeleteProject, parts)
	case "view_project":
		return projectAction(cbViewProject, parts)
	case "back_to_project":
		return projectAction(cbBackToProject, parts)
	case "edit_project_name":
		return projectAction(cbEditProjectName, parts)
	case "edit_project_desc":
		return projectAction(cbEditProjectDesc, parts)
	case "view_tasks":
		return projectAction(cbViewTasks, parts)
	case "view_team":
		return projectAction(cbViewTeam, parts)
	case "add_member":
		return projectAction(cbAddMember, parts)
	case "create_task":
		return projectAction(cbCreateTask, parts)

	case "approve_join":
		return projectUserAction(cbApproveJoin, parts)
	case "reject_join":
		return projectUserAction(cbRejectJoin, parts)
	case "add_member_confirm":
		return projectUserAction(cbAddMemberConfirm, parts)

	case "edit_task":
		return taskAction(cbEditTask, parts)
	case "delete_task":
		return taskAction(cbDeleteTask, parts)

	case "task_status":
		if len(parts) != 3 {
			return callbackAction{}
		}
		status, ok := entity.ParseTaskStatus(parts[2])
		if !ok {
			return callbackAction{}
		}
		return callbackAction{kind: cbTaskStatus, taskID: parts[1], status: status}

	case "edit_profile":
		return callbackAction{kind: cbEditProfile}
	case "back_to_menu":
		return callbackAction{kind: cbBackToMenu}
	case "cancel_task_creation":
		return callbackAction{kind: cbCancelTaskCreation}
	case "back_to_tasks":
		return callbackAction{kind: cbBackToTasks}
	}

	return callbackAction{}
}

func projectAction(kind callbackKind, parts []string) callbackAction {
	if len(parts) != 2 || parts[1] == "" {
		return callbackAction{}
	}
	return callbackAction{kind: kind, projectID: parts[1]}
}

func taskAction(kind callbackKind, parts []string) callbackAction {
	if len(parts) != 2 || parts[1] == "" {
		return callbackAction{}
	}
	return callbackAction{kind: kind, taskID: parts[1]}
}

func projectUserAction(kind callbackKind, parts []string) callbackAction {
	if len(parts) != 3 || parts[1] == "" {
		return callbackAction{}
	}
	userID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return callbackAction{}
	}
	return callbackAction{kind: kind, projectID: parts[1], userID: userID}
}
