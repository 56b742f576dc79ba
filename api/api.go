package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/hoshinonyaruko/snake-duel/render"
	"github.com/hoshinonyaruko/snake-duel/snake"
	"github.com/hoshinonyaruko/snake-duel/structs"
)

// Server bundles what the handlers need.
type Server struct {
	Runner    *Runner
	Hub       *Hub
	Renderer  *render.Renderer
	OutputDir string
	SelfPath  string
}

// Router registers every route on a new gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	// 处理按键：方向、菜单、暂停、重开、网格
	router.GET("/key", s.KeyHandler)
	// 当前状态的 JSON 快照
	router.GET("/state", s.StateHandler)
	// 渲染函数 返回静态地址
	router.GET("/render-map", s.RenderMapHandler)
	router.GET("/spawn-obstacle", s.SpawnObstacleHandler)
	router.GET("/spawn-item", s.SpawnItemHandler)
	router.GET("/ws", s.Hub.Serve)
	router.Static("/static", s.OutputDir) // 静态文件服务
	return router
}

func (s *Server) KeyHandler(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: key"})
		return
	}

	snap, err := s.Runner.Do(c.Request.Context(), func(g *snake.Game) error {
		g.HandleKey(key)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) StateHandler(c *gin.Context) {
	snap, err := s.Runner.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) RenderMapHandler(c *gin.Context) {
	snap, err := s.Runner.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 绘图在游戏协程之外进行，只依赖快照
	fileName := "frame.png"
	if err := s.Renderer.SavePNG(snap, filepath.Join(s.OutputDir, fileName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Unable to render map: %v", err)})
		return
	}

	imageUrl := fmt.Sprintf("http://%s/static/%s", s.SelfPath, fileName)
	c.JSON(http.StatusOK, gin.H{"image_url": imageUrl})
}

func (s *Server) SpawnObstacleHandler(c *gin.Context) {
	var obstacle structs.Position
	_, err := s.Runner.Do(c.Request.Context(), func(g *snake.Game) error {
		var err error
		obstacle, err = g.SpawnObstacle()
		return err
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"obstacle": obstacle})
}

func (s *Server) SpawnItemHandler(c *gin.Context) {
	itemType, ok := structs.ParseItemType(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid item type '%s' provided", c.Query("type"))})
		return
	}

	var item structs.Item
	_, err := s.Runner.Do(c.Request.Context(), func(g *snake.Game) error {
		var err error
		item, err = g.SpawnItem(itemType)
		return err
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, snake.ErrNoSession):
		return http.StatusConflict
	case errors.Is(err, snake.ErrPairedItem):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
