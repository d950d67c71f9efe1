package main

// General API documentation for swaggo. Run `swag init` to generate docs.
//
// @title           HandyBoss LLM API
// @version         1.0
// @description     Local LLM HTTP server backed by an in-process llama.cpp model.
//
// @contact.name   HandyBoss maintainers
// @contact.url    https://github.com/nate-ooley/HandyBoss
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
