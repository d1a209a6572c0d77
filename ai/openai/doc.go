// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package openai provides AI service implementations using OpenAI-compatible APIs.
//
// This package implements ai.Embedder and ai.ModelLoader using the langchaingo
// library to communicate with OpenAI or OpenAI-compatible embedding services
// (such as Ollama, LocalAI, vLLM or text-embeddings-inference).
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithHost("http://localhost:7997"), // /v1 added automatically
//	    ai.WithPrimaryModel("klue/roberta-large"),
//	)
//
//	loader, err := openai.NewLoader(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	encoder, err := ai.NewEncoder(ctx, loader, config)
//	vectors, err := encoder.Encode(ctx, texts)
package openai
