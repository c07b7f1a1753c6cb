package docs

// @title Forum API
// @version 1.0
// @description Forum backend: users, categories, topics, replies, votes and private messages
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@forum.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
