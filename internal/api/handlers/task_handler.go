package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/internal/socket"
	"field-sales-ops-api-server/internal/workflow"
	"field-sales-ops-api-server/pkg/pagination"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
	Hub      *socket.Hub
}

type TaskItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
}

type CreateTaskRequest struct {
	Title            string            `json:"title" binding:"required"`
	Description      string            `json:"description"`
	AssignedTo       string            `json:"assignedTo"`
	ExternalAssignee string            `json:"externalAssignee"`
	StaffRole        string            `json:"staffRole" binding:"required"`
	Items            []TaskItemRequest `json:"items" binding:"omitempty,dive"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	// A task goes to a staff user or to a named external helper, never
	// neither and never both.
	if (req.AssignedTo == "") == (req.ExternalAssignee == "") {
		c.JSON(http.StatusBadRequest, response.Error("Provide exactly one of assignedTo or externalAssignee"))
		return
	}

	var assignedTo *primitive.ObjectID
	if req.AssignedTo != "" {
		id, err := primitive.ObjectIDFromHex(req.AssignedTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid assignee id"))
			return
		}
		count, err := h.DB.Collection("users").CountDocuments(context.Background(), bson.M{"_id": id, "isActive": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error("Database error checking for assignee"))
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, response.Error("Assignee not found"))
			return
		}
		assignedTo = &id
	}

	items := make([]models.TaskItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.TaskItem{Name: it.Name, Quantity: it.Quantity})
	}

	userID, _ := currentUser(c)
	now := time.Now()
	task := models.Task{
		Title:            req.Title,
		Description:      req.Description,
		AssignedTo:       assignedTo,
		ExternalAssignee: req.ExternalAssignee,
		StaffRole:        req.StaffRole,
		Items:            items,
		Status:           models.TaskStatusPending,
		CreatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	result, err := h.DB.Collection("tasks").InsertOne(context.Background(), task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create task"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}

	h.Recorder.Record(userID, models.ActivityTypeTask, "created task", task.ID, models.OnModelTask, nil)

	c.JSON(http.StatusCreated, response.Success(task))
}

// Transition moves a task along Pending -> In Progress -> Completed.
func (h *TaskHandler) Transition(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		var task models.Task
		err := h.DB.Collection("tasks").FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, response.Error("Task not found"))
			} else {
				c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve task"))
			}
			return
		}

		userID, role := currentUser(c)
		if err := workflow.TaskRules.Check(task.Status, target, role); err != nil {
			writeTransitionError(c, err)
			return
		}

		// Only the assignee or its creator may move a task; managers pass.
		isManager := role == models.RoleAdmin || role == models.RoleSubAdmin || role == models.RoleMidLevelManager
		isAssignee := task.AssignedTo != nil && *task.AssignedTo == userID
		if !isManager && !isAssignee && task.CreatedBy != userID {
			c.JSON(http.StatusForbidden, response.Error("You do not have permission to update this task"))
			return
		}

		_, err = h.DB.Collection("tasks").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": bson.M{
			"status":    target,
			"updatedAt": time.Now(),
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to update task"))
			return
		}

		h.Recorder.Record(userID, models.ActivityTypeTask, workflow.Verb(target)+" task", id, models.OnModelTask, nil)
		if task.AssignedTo != nil {
			h.Hub.Notify(task.AssignedTo.Hex(), socket.Event{Type: "task", EntityID: id.Hex(), Status: target})
		}
		h.Hub.Notify(task.CreatedBy.Hex(), socket.Event{Type: "task", EntityID: id.Hex(), Status: target})

		h.DB.Collection("tasks").FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
		c.JSON(http.StatusOK, response.Success(task))
	}
}

// PunchIn opens the task's punch sub-state. Independent of the main
// status; a task may be punched in and out repeatedly.
func (h *TaskHandler) PunchIn(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var task models.Task
	err := h.DB.Collection("tasks").FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Task not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve task"))
		}
		return
	}

	if task.PunchStatus == models.TaskPunchedIn {
		c.JSON(http.StatusBadRequest, response.Error("Already punched in"))
		return
	}

	now := time.Now()
	_, err = h.DB.Collection("tasks").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{
		"$set":  bson.M{"punchStatus": models.TaskPunchedIn, "updatedAt": now},
		"$push": bson.M{"punchHistory": models.PunchRecord{PunchInTime: now}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to punch in"))
		return
	}

	userID, _ := currentUser(c)
	h.Recorder.Record(userID, models.ActivityTypePunch, "punched in on task", id, models.OnModelTask, nil)

	h.DB.Collection("tasks").FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
	c.JSON(http.StatusOK, response.Success(task))
}

// PunchOut closes the task's punch sub-state and stamps the open history
// entry.
func (h *TaskHandler) PunchOut(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var task models.Task
	err := h.DB.Collection("tasks").FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Task not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve task"))
		}
		return
	}

	if task.PunchStatus != models.TaskPunchedIn {
		c.JSON(http.StatusBadRequest, response.Error("Not punched in"))
		return
	}

	// Stamp the trailing open record by index; the history is append-only.
	now := time.Now()
	set := bson.M{
		"punchStatus": models.TaskPunchedOut,
		"updatedAt":   now,
	}
	if last := len(task.PunchHistory) - 1; last >= 0 {
		set["punchHistory."+strconv.Itoa(last)+".punchOutTime"] = now
	}
	update := bson.M{"$set": set}

	_, err = h.DB.Collection("tasks").UpdateOne(context.Background(), bson.M{"_id": id}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to punch out"))
		return
	}

	userID, _ := currentUser(c)
	h.Recorder.Record(userID, models.ActivityTypePunch, "punched out on task", id, models.OnModelTask, nil)

	h.DB.Collection("tasks").FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
	c.JSON(http.StatusOK, response.Success(task))
}

func (h *TaskHandler) GetAllTasks(c *gin.Context) {
	page := pagination.Parse(c)
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	userID, role := currentUser(c)
	if role == models.RoleMarketingStaff {
		filter["$or"] = []bson.M{{"assignedTo": userID}, {"createdBy": userID}}
	}

	collection := h.DB.Collection("tasks")
	total, err := collection.CountDocuments(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to count tasks"))
		return
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(int64(page.Limit)).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query tasks"))
		return
	}
	defer cursor.Close(context.Background())

	var tasks []models.Task
	if err = cursor.All(context.Background(), &tasks); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode tasks"))
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	c.JSON(http.StatusOK, response.List(tasks, total, page.Page, page.Limit))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var task models.Task
	err := h.DB.Collection("tasks").FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Task not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve task"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"task":       task,
		"assignedTo": lookupUserRef(h.DB, task.AssignedTo),
		"createdBy":  lookupUserRef(h.DB, &task.CreatedBy),
	}))
}

// DeleteTask removes a task permanently. Creator or admin only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var task models.Task
	err := h.DB.Collection("tasks").FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Task not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve task"))
		}
		return
	}

	userID, role := currentUser(c)
	if role != models.RoleAdmin && role != models.RoleSubAdmin && task.CreatedBy != userID {
		c.JSON(http.StatusForbidden, response.Error("You do not have permission to delete this task"))
		return
	}

	if _, err := h.DB.Collection("tasks").DeleteOne(context.Background(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete task"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypeTask, "deleted task", id, models.OnModelTask, nil)

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Task deleted"}))
}
